package engine

// Context is the ordered key/value mapping handed to the template renderer.
// Keys keep insertion order so repeated compilations render identically.
type Context struct {
	keys []string
	vals map[string]string
}

// NewContext returns an empty context.
func NewContext() *Context {
	return &Context{vals: make(map[string]string)}
}

// Set adds or replaces a key. Replacing keeps the original position.
func (c *Context) Set(key, value string) {
	if _, ok := c.vals[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.vals[key] = value
}

// Get returns the value for key.
func (c *Context) Get(key string) (string, bool) {
	v, ok := c.vals[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (c *Context) Keys() []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

// Map returns a copy of the mapping for template execution.
func (c *Context) Map() map[string]string {
	out := make(map[string]string, len(c.vals))
	for k, v := range c.vals {
		out[k] = v
	}
	return out
}
