package domain

// Supported social platforms
const (
	PlatformFacebook  = "facebook"
	PlatformInstagram = "instagram"
)

// ValidPlatforms is the closed set of platforms accepted by the linking flow.
// Adding a provider means adding one entry here plus one Provider implementation.
var ValidPlatforms = map[string]bool{
	PlatformFacebook:  true,
	PlatformInstagram: true,
}

// IsValidPlatform reports whether platform is one of the supported values.
func IsValidPlatform(platform string) bool {
	return ValidPlatforms[platform]
}
