package normalize

// ContentItem is the canonical representation of a captured piece of content
// awaiting curation or republishing.
type ContentItem struct {
	ID          string   `json:"id"`
	Caption     string   `json:"caption,omitempty"`
	MediaType   string   `json:"mediaType,omitempty"`
	MediaURL    string   `json:"mediaUrl,omitempty"`
	Username    string   `json:"username,omitempty"`
	Approved    bool     `json:"approved"`
	StatusLabel string   `json:"statusLabel"`
	LikeCount   *float64 `json:"likeCount,omitempty"`
	CapturedAt  string   `json:"capturedAt,omitempty"`
}

var (
	contentIDKeys       = []string{"id", "_id", "uuid", "contentId", "content_id", "mediaId"}
	contentCaptionKeys  = []string{"caption", "text", "title", "description"}
	contentTypeKeys     = []string{"mediaType", "media_type", "type", "kind"}
	contentMediaRelKeys = []string{"media", "asset", "file"}
	contentMediaKeys    = []string{"url", "src", "link"}
	contentOwnerRelKeys = []string{"account", "owner", "profile"}
	contentOwnerKeys    = []string{"username", "handle", "login"}
	contentStatusKeys   = []string{"status", "reviewStatus", "review_status", "state"}
	contentLikeKeys     = []string{"likeCount", "like_count", "likes"}
	contentCapturedKeys = []string{"capturedAt", "captured_at", "createdAt", "created_at", "timestamp"}
)

// NormalizeContentItem converts a raw backend record into a ContentItem, or
// nil when the input is not an object or carries no identity.
func NormalizeContentItem(raw any) *ContentItem {
	rec, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	id := AsID(Field(rec, contentIDKeys...))
	if id == "" {
		return nil
	}

	approved, label := Status(Field(rec, contentStatusKeys...))
	item := &ContentItem{
		ID:          id,
		Caption:     AsString(Field(rec, contentCaptionKeys...)),
		MediaType:   AsString(Field(rec, contentTypeKeys...)),
		MediaURL:    AsString(NestedField(rec, contentMediaRelKeys, contentMediaKeys)),
		Username:    AsString(NestedField(rec, contentOwnerRelKeys, contentOwnerKeys)),
		Approved:    approved,
		StatusLabel: label,
		CapturedAt:  ISOTime(Field(rec, contentCapturedKeys...)),
	}
	if n, ok := AsNumber(Field(rec, contentLikeKeys...)); ok {
		item.LikeCount = &n
	}
	return item
}
