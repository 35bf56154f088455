package instagram

// DefaultGraphURL is the Meta Graph API base used for Instagram content
// operations (business accounts are addressed through the Facebook graph).
const DefaultGraphURL = "https://graph.facebook.com/v19.0"

// DefaultPostLimit is how many recent posts ListPosts returns when the
// caller does not ask for a specific count.
const DefaultPostLimit = 5

// Field lists requested from the Graph API.
const (
	ProfileFields = "id,username,biography,followers_count,follows_count,media_count,name,profile_picture_url,website"
	MediaFields   = "id,caption,media_type,media_url,permalink,thumbnail_url,timestamp,like_count,comments_count"
)

// Log Messages
const (
	LogErrContentRequestFailed = "Instagram content request failed"
)
