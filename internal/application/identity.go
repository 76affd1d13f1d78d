package application

// Identity is the acting user resolved from a verified token. Name and
// AvatarURL ride along so posts and comments can snapshot them without
// another lookup.
type Identity struct {
	UserID    string
	Name      string
	AvatarURL string
}
