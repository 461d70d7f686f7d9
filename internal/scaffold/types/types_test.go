package types

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/artisanexperiences/create-app/internal/pkgmanager"
)

func TestScaffoldContext_Vars(t *testing.T) {
	t.Run("get on nil map returns empty", func(t *testing.T) {
		sc := &ScaffoldContext{}
		assert.Equal(t, "", sc.GetVar("missing"))
	})

	t.Run("set initializes map", func(t *testing.T) {
		sc := &ScaffoldContext{}
		sc.SetVar("Key", "value")
		assert.Equal(t, "value", sc.GetVar("Key"))
	})

	t.Run("concurrent access", func(t *testing.T) {
		sc := &ScaffoldContext{}
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				sc.SetVar("Key", "value")
				_ = sc.GetVar("Key")
			}()
		}
		wg.Wait()
		assert.Equal(t, "value", sc.GetVar("Key"))
	})
}

func TestScaffoldContext_TemplateData(t *testing.T) {
	t.Run("yarn", func(t *testing.T) {
		sc := &ScaffoldContext{AppName: "my-app", Manager: pkgmanager.Yarn}
		data := sc.TemplateData()

		assert.Equal(t, "my-app", data.AppName)
		assert.Equal(t, "yarn", data.PackageManager)
		assert.Equal(t, "yarn start", data.StartCommand)
		assert.Equal(t, "yarn build", data.BuildCommand)
	})

	t.Run("npm", func(t *testing.T) {
		sc := &ScaffoldContext{AppName: "my-app", Manager: pkgmanager.Npm}
		data := sc.TemplateData()

		assert.Equal(t, "npm start", data.StartCommand)
		assert.Equal(t, "npm test", data.TestCommand)
		assert.Equal(t, "npm run build", data.BuildCommand)
		assert.Equal(t, "npm run eject", data.EjectCommand)
	})
}
