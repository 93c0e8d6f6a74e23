// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "strings"

// VideoCatalogEntry describes one selectable video.
type VideoCatalogEntry struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// Catalog is the set of videos offered by the sidebar picker. The catalog is
// static in this revision; there is no network catalog fetch.
type Catalog []VideoCatalogEntry

// Filter returns the entries whose title contains term as a case-insensitive
// substring. An empty term returns the full catalog unfiltered.
func (c Catalog) Filter(term string) Catalog {
	if term == "" {
		return c
	}
	needle := strings.ToLower(term)
	out := make(Catalog, 0, len(c))
	for _, e := range c {
		if strings.Contains(strings.ToLower(e.Title), needle) {
			out = append(out, e)
		}
	}
	return out
}

// ByID returns the entry with the given video id, or false.
func (c Catalog) ByID(id string) (VideoCatalogEntry, bool) {
	for _, e := range c {
		if e.ID == id {
			return e, true
		}
	}
	return VideoCatalogEntry{}, false
}

// DefaultCatalog is the built-in video catalog.
func DefaultCatalog() Catalog {
	return Catalog{
		{ID: "dQw4w9WgXcQ", Title: "Intro to the Course", ThumbnailURL: "https://img.youtube.com/vi/dQw4w9WgXcQ/default.jpg"},
		{ID: "9bZkp7q19f0", Title: "Lecture 1: Foundations", ThumbnailURL: "https://img.youtube.com/vi/9bZkp7q19f0/default.jpg"},
		{ID: "3JZ_D3ELwOQ", Title: "Lecture 2: Core Concepts", ThumbnailURL: "https://img.youtube.com/vi/3JZ_D3ELwOQ/default.jpg"},
		{ID: "L_jWHffIx5E", Title: "Lecture 3: Applications", ThumbnailURL: "https://img.youtube.com/vi/L_jWHffIx5E/default.jpg"},
		{ID: "kJQP7kiw5Fk", Title: "Review Session", ThumbnailURL: "https://img.youtube.com/vi/kJQP7kiw5Fk/default.jpg"},
	}
}
