package normalize

// Account is the canonical representation of a monitored social-media
// account.
type Account struct {
	ID            string   `json:"id"`
	Username      string   `json:"username,omitempty"`
	DisplayName   string   `json:"displayName,omitempty"`
	Platform      string   `json:"platform,omitempty"`
	Active        bool     `json:"active"`
	StatusLabel   string   `json:"statusLabel"`
	ProxyGroup    string   `json:"proxyGroup,omitempty"`
	FollowerCount *float64 `json:"followerCount,omitempty"`
	CreatedAt     string   `json:"createdAt,omitempty"`
}

// Candidate keys per account field, in precedence order.
var (
	accountIDKeys       = []string{"id", "_id", "uuid", "accountId", "account_id"}
	accountUsernameKeys = []string{"username", "userName", "user_name", "handle", "login"}
	accountNameKeys     = []string{"displayName", "display_name", "fullName", "full_name"}
	accountPlatformKeys = []string{"platform", "provider", "network"}
	accountStatusKeys   = []string{"status", "accountStatus", "account_status", "state", "isActive", "active"}
	accountProxyRelKeys = []string{"proxyGroup", "proxy_group", "proxy"}
	accountProxyKeys    = []string{"name", "label", "title"}
	accountFollowerKeys = []string{"followerCount", "follower_count", "followers"}
	accountCreatedKeys  = []string{"createdAt", "created_at", "registeredAt", "registered_at"}
)

// NormalizeAccount converts a raw backend record into an Account. It returns
// nil for non-object input and for records with no resolvable identity; a
// synthetic id is never fabricated.
func NormalizeAccount(raw any) *Account {
	rec, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	id := AsID(Field(rec, accountIDKeys...))
	if id == "" {
		return nil
	}

	active, label := Status(Field(rec, accountStatusKeys...))
	acc := &Account{
		ID:          id,
		Username:    AsString(Field(rec, accountUsernameKeys...)),
		DisplayName: AsString(Field(rec, accountNameKeys...)),
		Platform:    AsString(Field(rec, accountPlatformKeys...)),
		Active:      active,
		StatusLabel: label,
		ProxyGroup:  AsString(NestedField(rec, accountProxyRelKeys, accountProxyKeys)),
		CreatedAt:   ISOTime(Field(rec, accountCreatedKeys...)),
	}
	if n, ok := AsNumber(Field(rec, accountFollowerKeys...)); ok {
		acc.FollowerCount = &n
	}
	return acc
}
