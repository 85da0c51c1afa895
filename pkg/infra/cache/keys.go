package cache

import "fmt"

const PolicyListKey = "policies:all"

func PolicyKey(id string) string {
	return fmt.Sprintf("policy:%s", id)
}

// EvictPolicy drops one policy and the cached listing from m.
func EvictPolicy(m *TTLMap, id string) {
	if m == nil {
		return
	}
	m.Delete(PolicyKey(id))
	m.Delete(PolicyListKey)
}
