package dispatcher

import (
	"sort"
	"strings"
	"sync"

	"github.com/waddie/paredit.hx/internal/dispatcher/handler"
)

// Router maps action names to handlers, by namespace first and then by
// exact name.
type Router struct {
	mu sync.RWMutex

	namespaces map[string]handler.NamespaceHandler
	exact      map[string][]handler.Handler // sorted by priority, descending
}

// NewRouter creates a new action router.
func NewRouter() *Router {
	return &Router{
		namespaces: make(map[string]handler.NamespaceHandler),
		exact:      make(map[string][]handler.Handler),
	}
}

// RegisterNamespace registers a handler for all actions in a namespace.
func (r *Router) RegisterNamespace(h handler.NamespaceHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.namespaces[h.Namespace()] = h
}

// UnregisterNamespace removes a namespace handler.
func (r *Router) UnregisterNamespace(namespace string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.namespaces, namespace)
}

// Register adds a handler for an exact action name.
func (r *Router) Register(actionName string, h handler.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	handlers := append(r.exact[actionName], h)
	sort.SliceStable(handlers, func(i, j int) bool {
		return handlers[i].Priority() > handlers[j].Priority()
	})
	r.exact[actionName] = handlers
}

// Unregister removes all exact handlers for an action name.
func (r *Router) Unregister(actionName string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.exact, actionName)
}

// Route finds the handler for an action, or nil.
func (r *Router) Route(actionName string) handler.Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if ns := extractNamespace(actionName); ns != "" {
		if h, ok := r.namespaces[ns]; ok && h.CanHandle(actionName) {
			return handler.NewNamespaceAdapter(h)
		}
	}
	for _, h := range r.exact[actionName] {
		if h.CanHandle(actionName) {
			return h
		}
	}
	return nil
}

// CanRoute returns true if some handler accepts the action.
func (r *Router) CanRoute(actionName string) bool {
	return r.Route(actionName) != nil
}

// Namespaces returns all registered namespace names, sorted.
func (r *Router) Namespaces() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.namespaces))
	for name := range r.namespaces {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// extractNamespace extracts the namespace from "namespace.action" format.
// Returns empty string if no namespace separator is found.
func extractNamespace(actionName string) string {
	idx := strings.Index(actionName, ".")
	if idx < 0 {
		return ""
	}
	return actionName[:idx]
}

// ExtractActionName returns the part after the namespace.
// For "paredit.slurpForward", returns "slurpForward".
func ExtractActionName(fullName string) string {
	idx := strings.Index(fullName, ".")
	if idx < 0 {
		return fullName
	}
	return fullName[idx+1:]
}

// BuildActionName joins a namespace and an action name.
func BuildActionName(namespace, action string) string {
	if namespace == "" {
		return action
	}
	return namespace + "." + action
}
