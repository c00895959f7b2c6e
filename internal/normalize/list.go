package normalize

import "math"

// PageMeta is the pagination metadata attached to every list response.
type PageMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
	Total      int `json:"total"`
}

// List extracts the record list from a paginated envelope. The payload may
// be the array itself, or an object carrying the array under "data" or
// "items". Anything else yields an empty list. Non-object elements are
// dropped.
func List(payload any) []map[string]any {
	switch v := payload.(type) {
	case []any:
		return records(v)
	case map[string]any:
		if data, ok := v["data"].([]any); ok {
			return records(data)
		}
		if items, ok := v["items"].([]any); ok {
			return records(items)
		}
	}
	return []map[string]any{}
}

func records(elements []any) []map[string]any {
	out := make([]map[string]any, 0, len(elements))
	for _, el := range elements {
		if rec, ok := el.(map[string]any); ok {
			out = append(out, rec)
		}
	}
	return out
}

var (
	metaObjectKeys     = []string{"meta", "pagination"}
	metaPageKeys       = []string{"page", "currentPage", "current_page"}
	metaLimitKeys      = []string{"limit", "perPage", "per_page", "pageSize", "page_size"}
	metaTotalKeys      = []string{"total", "totalCount", "total_count", "count"}
	metaTotalPagesKeys = []string{"totalPages", "total_pages", "pageCount", "page_count"}
)

// Meta resolves pagination metadata from a paginated envelope. Explicit
// well-typed values win; totalPages is derived from total and limit when the
// backend omits it; with no usable meta at all the requested page/limit and
// the observed record count stand in. It never fails.
func Meta(payload any, requestedPage, requestedLimit, observedCount int) PageMeta {
	if requestedPage < 1 {
		requestedPage = 1
	}
	if requestedLimit < 1 {
		requestedLimit = 1
	}
	if observedCount < 0 {
		observedCount = 0
	}

	meta := PageMeta{
		Page:  requestedPage,
		Limit: requestedLimit,
		Total: observedCount,
	}

	src, _ := payload.(map[string]any)
	for _, key := range metaObjectKeys {
		if nested, ok := src[key].(map[string]any); ok {
			src = nested
			break
		}
	}

	totalPages := 0
	if src != nil {
		if n, ok := AsNumber(Field(src, metaPageKeys...)); ok && n >= 1 {
			meta.Page = int(n)
		}
		if n, ok := AsNumber(Field(src, metaLimitKeys...)); ok && n >= 1 {
			meta.Limit = int(n)
		}
		if n, ok := AsNumber(Field(src, metaTotalKeys...)); ok && n >= 0 {
			meta.Total = int(n)
		}
		if n, ok := AsNumber(Field(src, metaTotalPagesKeys...)); ok && n >= 1 {
			totalPages = int(n)
		}
	}

	if totalPages < 1 {
		totalPages = int(math.Ceil(float64(meta.Total) / float64(meta.Limit)))
		if totalPages < 1 {
			totalPages = 1
		}
	}
	meta.TotalPages = totalPages
	return meta
}
