package sqlite

// Schema DDL. Creation is idempotent so Attach can run against an existing
// database without disturbing its rows.
const (
	createCategories = `CREATE TABLE IF NOT EXISTS categories (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL UNIQUE
);`

	createDocuments = `CREATE TABLE IF NOT EXISTS documents (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    content TEXT,
    category_id INTEGER REFERENCES categories(id),
    uri TEXT NOT NULL UNIQUE
);`
)

// Index DDL for the lookups on the open-or-create path.
const (
	idxDocumentsCategory = `CREATE INDEX IF NOT EXISTS idx_documents_category ON documents(category_id);`
	idxDocumentsName     = `CREATE INDEX IF NOT EXISTS idx_documents_name ON documents(name);`
)

// schemaDDL lists all CREATE statements in dependency order.
var schemaDDL = []string{
	createCategories,
	createDocuments,
	idxDocumentsCategory,
	idxDocumentsName,
}
