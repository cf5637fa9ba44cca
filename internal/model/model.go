package model

import (
	"html/template"
	"path"
	"time"

	"github.com/syeo66/ochsenbein.red-2023/internal/schema"
)

// BlogPost is a validated entry of the blog collection.
type BlogPost struct {
	ID          string
	Title       string
	Description string
	PubDate     time.Time
	UpdatedDate schema.Optional[time.Time]
	HeroImage   schema.Optional[string]
	DevTo       schema.Optional[string]
	SourcePath  string
	Permalink   string
	Body        []byte
	// HTML is filled by the renderer.
	HTML template.HTML
}

// PortfolioItem is a validated entry of the portfolio collection.
type PortfolioItem struct {
	ID          string
	Slug        string
	Name        string
	Image       schema.ImageRef
	Employer    string
	Client      string
	Website     schema.Optional[string]
	Short       string
	Description string
	Tasks       string
	Tags        []string
	SourcePath  string
	Permalink   string
}

// Experiment is a validated entry of the experiments collection.
type Experiment struct {
	ID          string
	Slug        string
	Name        string
	Image       schema.ImageRef
	Website     schema.Optional[string]
	Short       string
	Description schema.Optional[string]
	Tags        []string
	SourcePath  string
	Permalink   string
}

// NewBlogPost builds a BlogPost from a validated blog record.
func NewBlogPost(id, sourcePath string, body []byte, rec *schema.Record) *BlogPost {
	return &BlogPost{
		ID:          id,
		Title:       rec.String("title"),
		Description: rec.String("description"),
		PubDate:     rec.Date("pubDate"),
		UpdatedDate: rec.OptionalDate("updatedDate"),
		HeroImage:   rec.OptionalString("heroImage"),
		DevTo:       rec.OptionalString("devTo"),
		SourcePath:  sourcePath,
		Permalink:   permalink(schema.CollectionBlog, id),
		Body:        body,
	}
}

// NewPortfolioItem builds a PortfolioItem from a validated portfolio record.
// The permalink uses the record's slug.
func NewPortfolioItem(id, sourcePath string, rec *schema.Record) *PortfolioItem {
	slug := rec.String("slug")
	return &PortfolioItem{
		ID:          id,
		Slug:        slug,
		Name:        rec.String("name"),
		Image:       rec.Image("image"),
		Employer:    rec.String("employer"),
		Client:      rec.String("client"),
		Website:     rec.OptionalString("website"),
		Short:       rec.String("short"),
		Description: rec.String("description"),
		Tasks:       rec.String("tasks"),
		Tags:        rec.Strings("tags"),
		SourcePath:  sourcePath,
		Permalink:   permalink(schema.CollectionPortfolio, slug),
	}
}

// NewExperiment builds an Experiment from a validated experiments record.
func NewExperiment(id, sourcePath string, rec *schema.Record) *Experiment {
	slug := rec.String("slug")
	return &Experiment{
		ID:          id,
		Slug:        slug,
		Name:        rec.String("name"),
		Image:       rec.Image("image"),
		Website:     rec.OptionalString("website"),
		Short:       rec.String("short"),
		Description: rec.OptionalString("description"),
		Tags:        rec.Strings("tags"),
		SourcePath:  sourcePath,
		Permalink:   permalink(schema.CollectionExperiments, slug),
	}
}

// LastModified returns UpdatedDate if set, PubDate otherwise.
func (p *BlogPost) LastModified() time.Time {
	return p.UpdatedDate.OrElse(p.PubDate)
}

func permalink(collection, id string) string {
	return path.Join("/", collection, id) + "/"
}
