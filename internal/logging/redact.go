package logging

import "strings"

const redacted = "[REDACTED]"

// redact masks values whose key names a credential. The catalog token and
// bearer tokens travel through request logs otherwise.
func redact(kv []any) []any {
	if len(kv) < 2 {
		return kv
	}
	var out []any
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok || !isSecretKey(key) {
			continue
		}
		if out == nil {
			out = make([]any, len(kv))
			copy(out, kv)
		}
		out[i+1] = redacted
	}
	if out == nil {
		return kv
	}
	return out
}

func isSecretKey(key string) bool {
	k := strings.ToLower(strings.TrimSpace(key))
	for _, s := range []string{"token", "authorization", "password", "secret", "api_key"} {
		if strings.Contains(k, s) {
			return true
		}
	}
	return false
}
