package schema

// Collection names.
const (
	CollectionBlog        = "blog"
	CollectionPortfolio   = "portfolio"
	CollectionExperiments = "experiments"
)

// BlogSchema returns the schema for blog posts.
func BlogSchema() *Schema {
	return &Schema{
		Name: CollectionBlog,
		Type: ContentCollection,
		Fields: []Field{
			{Name: "title", Type: TypeNonEmptyString, Required: true},
			{Name: "description", Type: TypeNonEmptyString, Required: true},
			{Name: "pubDate", Type: TypeStringOrDate, Required: true, Coerce: CoerceDate},
			// updatedDate only accepts strings; a date value is a type mismatch.
			{Name: "updatedDate", Type: TypeString, Coerce: CoerceDate, EmptyAbsent: true},
			{Name: "heroImage", Type: TypeString},
			{Name: "devTo", Type: TypeString},
		},
	}
}

// PortfolioSchema returns the schema for portfolio entries.
func PortfolioSchema() *Schema {
	return &Schema{
		Name: CollectionPortfolio,
		Type: DataCollection,
		Fields: []Field{
			{Name: "slug", Type: TypeString, Required: true},
			{Name: "name", Type: TypeString, Required: true},
			{Name: "image", Type: TypeImage, Required: true, Coerce: CoerceImage},
			{Name: "employer", Type: TypeString, Required: true},
			{Name: "client", Type: TypeString, Required: true},
			{Name: "website", Type: TypeString},
			{Name: "short", Type: TypeString, Required: true},
			{Name: "description", Type: TypeString, Required: true},
			{Name: "tasks", Type: TypeString, Required: true},
			{Name: "tags", Type: TypeStringList, Required: true},
		},
	}
}

// ExperimentsSchema returns the schema for experiments.
func ExperimentsSchema() *Schema {
	return &Schema{
		Name: CollectionExperiments,
		Type: DataCollection,
		Fields: []Field{
			{Name: "slug", Type: TypeString, Required: true},
			{Name: "name", Type: TypeString, Required: true},
			{Name: "image", Type: TypeImage, Required: true, Coerce: CoerceImage},
			{Name: "website", Type: TypeString},
			{Name: "short", Type: TypeString, Required: true},
			{Name: "description", Type: TypeString},
			{Name: "tags", Type: TypeStringList, Required: true},
		},
	}
}

// DefaultSchemas returns the site's three collections.
func DefaultSchemas() []*Schema {
	return []*Schema{BlogSchema(), PortfolioSchema(), ExperimentsSchema()}
}
