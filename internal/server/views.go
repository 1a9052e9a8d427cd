package server

import (
	"github.com/agenthands/pokedex/internal/catalog"
	"github.com/agenthands/pokedex/internal/persona"
)

type ItemView struct {
	ID          int            `json:"id"`
	Name        string         `json:"name"`
	DisplayName string         `json:"display_name"`
	Number      string         `json:"number"`
	Types       []string       `json:"types"`
	PrimaryType string         `json:"primary_type"`
	Stats       []catalog.Stat `json:"stats"`
	ImageURL    string         `json:"image_url,omitempty"`
}

func newItemView(item catalog.Item) ItemView {
	return ItemView{
		ID:          item.ID,
		Name:        item.Name,
		DisplayName: catalog.DisplayName(item.Name),
		Number:      catalog.FormatNumber(item.ID),
		Types:       item.Categories,
		PrimaryType: item.PrimaryCategory(),
		Stats:       item.Stats,
		ImageURL:    item.Image.URL(),
	}
}

func newItemViews(items []catalog.Item) []ItemView {
	out := make([]ItemView, 0, len(items))
	for _, item := range items {
		out = append(out, newItemView(item))
	}
	return out
}

type QueryView struct {
	Search string   `json:"search"`
	Types  []string `json:"types"`
	Sort   string   `json:"sort"`
	Page   int      `json:"page"`
}

// TypeFilter is one entry of the category filter bar. Query is the state
// that clicking the entry leads to.
type TypeFilter struct {
	Type   string `json:"type"`
	Active bool   `json:"active"`
	Query  string `json:"query"`
}

type BrowseResponse struct {
	Items      []ItemView         `json:"items"`
	TotalCount int                `json:"total_count"`
	TotalPages int                `json:"total_pages"`
	State      QueryView          `json:"state"`
	Pagination catalog.PageWindow `json:"pagination"`
	Filters    []TypeFilter       `json:"filters"`
	Query      string             `json:"query"`
}

func newTypeFilters(state catalog.QueryState) []TypeFilter {
	active := make(map[string]bool, len(state.Types))
	for _, t := range state.Types {
		active[t] = true
	}
	out := make([]TypeFilter, 0, len(catalog.Categories))
	for _, t := range catalog.Categories {
		out = append(out, TypeFilter{
			Type:   t,
			Active: active[t],
			Query:  state.ToggleType(t).Encode(),
		})
	}
	return out
}

func newBrowseResponse(res catalog.Result) BrowseResponse {
	types := res.State.Types
	if types == nil {
		types = []string{}
	}
	return BrowseResponse{
		Items:      newItemViews(res.Items),
		TotalCount: res.TotalCount,
		TotalPages: res.TotalPages,
		State: QueryView{
			Search: res.State.Search,
			Types:  types,
			Sort:   string(res.State.Sort),
			Page:   res.State.Page,
		},
		Pagination: catalog.Window(res.State.Page, res.TotalPages),
		Filters:    newTypeFilters(res.State),
		Query:      res.State.Encode(),
	}
}

type DetailView struct {
	catalog.Detail
	DisplayName   string `json:"display_name"`
	Number        string `json:"number"`
	ImageURL      string `json:"image_url,omitempty"`
	HeightDisplay string `json:"height_display"`
	WeightDisplay string `json:"weight_display"`
}

func newDetailView(d catalog.Detail) DetailView {
	return DetailView{
		Detail:        d,
		DisplayName:   catalog.DisplayName(d.Name),
		Number:        catalog.FormatNumber(d.ID),
		ImageURL:      d.Image.URL(),
		HeightDisplay: catalog.HeightFeetInches(d.HeightDecimeters),
		WeightDisplay: catalog.WeightPounds(d.WeightHectograms),
	}
}

type ShowcaseResponse struct {
	Hero      *ItemView  `json:"hero,omitempty"`
	Featured  []ItemView `json:"featured"`
	Popular   []ItemView `json:"popular"`
	Legendary []ItemView `json:"legendary"`
	Starters  []ItemView `json:"starters"`
}

func newShowcaseResponse(sc catalog.Showcase) ShowcaseResponse {
	resp := ShowcaseResponse{
		Featured:  newItemViews(sc.Featured),
		Popular:   newItemViews(sc.Popular),
		Legendary: newItemViews(sc.Legendary),
		Starters:  newItemViews(sc.Starters),
	}
	if sc.Hero != nil {
		hero := newItemView(*sc.Hero)
		resp.Hero = &hero
	}
	return resp
}

type ChatRequest struct {
	Messages []persona.Message `json:"messages" binding:"dive"`
}

type SuggestQuery struct {
	Term  string `form:"q"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

type SessionResponse struct {
	ID       string            `json:"id"`
	Pokemon  string            `json:"pokemon,omitempty"`
	Messages []persona.Message `json:"messages"`
}

type AppendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

type AppendMessageResponse struct {
	Reply    string            `json:"reply"`
	Messages []persona.Message `json:"messages"`
}
