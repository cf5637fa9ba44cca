package model

import (
	"sort"

	"github.com/syeo66/ochsenbein.red-2023/internal/schema"
)

// TagIndex lists the entries carrying one tag.
type TagIndex struct {
	Portfolio   []*PortfolioItem
	Experiments []*Experiment
}

// SiteData holds all site-wide data, including configuration and content.
type SiteData struct {
	Title       string
	BaseURL     string
	Params      map[string]any
	Blog        []*BlogPost
	Portfolio   []*PortfolioItem
	Experiments []*Experiment
	Tags        map[string]*TagIndex
}

// Add appends a validated record to the matching collection. Records of
// other collections are ignored and reported as false.
func (s *SiteData) Add(id, sourcePath string, body []byte, rec *schema.Record) bool {
	switch rec.Collection() {
	case schema.CollectionBlog:
		s.Blog = append(s.Blog, NewBlogPost(id, sourcePath, body, rec))
	case schema.CollectionPortfolio:
		s.Portfolio = append(s.Portfolio, NewPortfolioItem(id, sourcePath, rec))
	case schema.CollectionExperiments:
		s.Experiments = append(s.Experiments, NewExperiment(id, sourcePath, rec))
	default:
		return false
	}
	return true
}

// Finalize sorts the collections and builds the tag index. Blog posts are
// sorted newest first, portfolio and experiments by slug.
func (s *SiteData) Finalize() {
	sort.SliceStable(s.Blog, func(i, j int) bool {
		return s.Blog[i].PubDate.After(s.Blog[j].PubDate)
	})
	sort.SliceStable(s.Portfolio, func(i, j int) bool {
		return s.Portfolio[i].Slug < s.Portfolio[j].Slug
	})
	sort.SliceStable(s.Experiments, func(i, j int) bool {
		return s.Experiments[i].Slug < s.Experiments[j].Slug
	})

	s.Tags = make(map[string]*TagIndex)
	for _, item := range s.Portfolio {
		for _, tag := range item.Tags {
			s.tag(tag).Portfolio = append(s.tag(tag).Portfolio, item)
		}
	}
	for _, exp := range s.Experiments {
		for _, tag := range exp.Tags {
			s.tag(tag).Experiments = append(s.tag(tag).Experiments, exp)
		}
	}
}

// TagNames returns the tag names, sorted.
func (s *SiteData) TagNames() []string {
	names := make([]string, 0, len(s.Tags))
	for name := range s.Tags {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *SiteData) tag(name string) *TagIndex {
	idx, ok := s.Tags[name]
	if !ok {
		idx = &TagIndex{}
		s.Tags[name] = idx
	}
	return idx
}
