package types

// Document is an editable document row. Name uniqueness is not global;
// the derived URI is the sole uniqueness key exposed to the user.
type Document struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Content    string `json:"content"`
	CategoryID int64  `json:"category_id,omitempty"` // 0 means uncategorized.
	URI        string `json:"uri"`
}

// DeriveURI computes the unique document URI from its category and name:
// "name" when uncategorized, "category/name" otherwise. The stored uri
// column must always equal this derivation.
func DeriveURI(categoryName, documentName string) string {
	if categoryName == "" {
		return documentName
	}
	return categoryName + "/" + documentName
}
