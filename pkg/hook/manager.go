package hook

import "sync"

// DefaultManager is the standard Manager backed by a TengoExecutor.
type DefaultManager struct {
	executor *TengoExecutor
	mutex    sync.RWMutex
}

// NewManager creates an empty hook manager.
func NewManager() *DefaultManager {
	return &DefaultManager{
		executor: NewTengoExecutor(),
	}
}

// Execute runs the hook of the given type, if one is registered.
func (m *DefaultManager) Execute(hookType Type, ctx Context) error {
	if !m.HasHook(hookType) {
		return nil
	}

	// Scripts get their own copy so they cannot mutate caller state.
	ctxCopy := ctx
	if ctxCopy.Vars == nil {
		ctxCopy.Vars = make(map[string]interface{})
	}
	return m.executor.Execute(hookType, ctxCopy)
}

// AddHook registers a hook, replacing any previous one of its type.
func (m *DefaultManager) AddHook(hook Hook) error {
	if hook.Type == "" {
		return ErrHookTypeEmpty
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.executor.AddScript(hook.Type, hook.Content)
	return nil
}

// RemoveHook unregisters the hook of the given type.
func (m *DefaultManager) RemoveHook(hookType Type) error {
	if hookType == "" {
		return ErrHookTypeEmpty
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.executor.RemoveScript(hookType)
	return nil
}

// HasHook reports whether a hook of the given type is registered.
func (m *DefaultManager) HasHook(hookType Type) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.executor.HasScript(hookType)
}
