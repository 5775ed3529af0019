// Package schema defines the fixed record layout every repository snapshot
// file is parsed under. The field list is declared once and shared by the
// loader, the merger and the aggregations so that every per-file dataset is
// union-compatible by construction.
package schema

// Kind is the logical type of a field.
type Kind string

const (
	KindInt64  Kind = "bigint"
	KindString Kind = "text"
)

// Field is a single named, typed, nullable column of the repository record.
type Field struct {
	Name     string
	Kind     Kind
	Nullable bool
}

// Column names of the repository record.
const (
	ID          = "id"
	RepoName    = "repo_name"
	FullName    = "full_name"
	Description = "description"
	Created     = "created"
	Language    = "language"
	OwnerType   = "type"
	Username    = "username"
	Stars       = "stars"
	Forks       = "forks"
	Subscribers = "subscribers"
	OpenIssues  = "open_issues"
	Topics      = "topics"

	// SearchTerm is not read from input files; the loader injects it from
	// the file name.
	SearchTerm = "search_term"
)

// OrganizationType is the owner type value that marks organization-owned
// repositories.
const OrganizationType = "Organization"

// RepoFields is the ordered field list applied to every input file.
var RepoFields = []Field{
	{Name: ID, Kind: KindInt64, Nullable: true},
	{Name: RepoName, Kind: KindString, Nullable: true},
	{Name: FullName, Kind: KindString, Nullable: true},
	{Name: Description, Kind: KindString, Nullable: true},
	{Name: Created, Kind: KindString, Nullable: true},
	{Name: Language, Kind: KindString, Nullable: true},
	{Name: OwnerType, Kind: KindString, Nullable: true},
	{Name: Username, Kind: KindString, Nullable: true},
	{Name: Stars, Kind: KindInt64, Nullable: true},
	{Name: Forks, Kind: KindInt64, Nullable: true},
	{Name: Subscribers, Kind: KindInt64, Nullable: true},
	{Name: OpenIssues, Kind: KindInt64, Nullable: true},
	{Name: Topics, Kind: KindString, Nullable: true},
}

// FieldNames returns the names of RepoFields in declaration order.
func FieldNames() []string {
	names := make([]string, len(RepoFields))
	for i, f := range RepoFields {
		names[i] = f.Name
	}
	return names
}

// Columns returns the column set of a loaded dataset: RepoFields followed by
// the injected SearchTerm column.
func Columns() []string {
	return append(FieldNames(), SearchTerm)
}
