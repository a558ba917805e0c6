package config

// UploadPolicy limits the files accepted into registration and product file slots.
type UploadPolicy struct {
	MaxSize      int64
	AllowedTypes []string
}

func (c *Config) UploadPolicy() UploadPolicy {
	return UploadPolicy{
		MaxSize:      c.Upload.MaxSize,
		AllowedTypes: c.Upload.AllowedTypes,
	}
}

// Allows reports whether a file of the given MIME type and size fits the policy.
// An empty policy accepts everything.
func (p UploadPolicy) Allows(contentType string, size int64) bool {
	if p.MaxSize > 0 && size > p.MaxSize {
		return false
	}
	if len(p.AllowedTypes) == 0 {
		return true
	}
	for _, t := range p.AllowedTypes {
		if t == contentType {
			return true
		}
	}
	return false
}
