package hook

import (
	"sync"

	"github.com/acltools/aclsync/pkg/errors"
	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// TengoExecutor compiles and runs Tengo hook scripts.
type TengoExecutor struct {
	scripts map[Type]string
	mutex   sync.RWMutex
}

// NewTengoExecutor creates an empty executor.
func NewTengoExecutor() *TengoExecutor {
	return &TengoExecutor{
		scripts: make(map[Type]string),
	}
}

// Execute runs the script registered for the hook type. A missing script is
// not an error. A script fails the operation by assigning a non-empty `err`
// variable.
func (e *TengoExecutor) Execute(hookType Type, ctx Context) error {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	script, exists := e.scripts[hookType]
	if !exists {
		return nil
	}

	instance := tengo.NewScript([]byte(script))
	instance.SetImports(stdlib.GetModuleMap("fmt", "os", "strings", "times", "text"))

	_ = instance.Add("operation", ctx.Operation)
	_ = instance.Add("sourcePath", ctx.SourcePath)
	_ = instance.Add("targetPath", ctx.TargetPath)
	_ = instance.Add("inputPath", ctx.InputPath)
	_ = instance.Add("recordCount", ctx.RecordCount)
	_ = instance.Add("dryRun", ctx.DryRun)
	for k, v := range ctx.Vars {
		_ = instance.Add(k, v)
	}

	compiled, err := instance.Run()
	if err != nil {
		return errors.Wrapf(ErrHookExecution, "%s: %v", hookType, err)
	}

	if errVar := compiled.Get("err"); errVar != nil {
		switch v := errVar.Value().(type) {
		case error:
			return errors.Wrap(ErrHookScript, v.Error())
		case string:
			if v != "" {
				return errors.Wrap(ErrHookScript, v)
			}
		}
	}
	return nil
}

// AddScript adds or replaces the script for the hook type.
func (e *TengoExecutor) AddScript(hookType Type, script string) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.scripts[hookType] = script
}

// RemoveScript removes the script for the hook type.
func (e *TengoExecutor) RemoveScript(hookType Type) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	delete(e.scripts, hookType)
}

// HasScript reports whether a script exists for the hook type.
func (e *TengoExecutor) HasScript(hookType Type) bool {
	e.mutex.RLock()
	defer e.mutex.RUnlock()
	_, exists := e.scripts[hookType]
	return exists
}
