package tmdb

import (
	"fmt"
	"strings"

	"github.com/rsekulic/videoteka-v1/internal/domain"
)

const (
	posterBase   = "https://image.tmdb.org/t/p/w780"
	backdropBase = "https://image.tmdb.org/t/p/original"
	youtubeWatch = "https://www.youtube.com/watch?v="
	maxCast      = 5
	unknownYear  = "N/A"
)

// mapDetails converts a details response into a catalog item without identifier
func mapDetails(d *details, kind MediaType) *domain.Item {
	item := &domain.Item{
		Title:       d.Title,
		Year:        yearOf(d.ReleaseDate),
		Kind:        domain.KindMovie,
		Description: d.Overview,
		Genres:      make([]string, 0, len(d.Genres)),
		Cast:        make([]string, 0, maxCast),
		Director:    directorOf(d.Credits.Crew),
		TrailerURL:  trailerOf(d.Videos.Results),
	}
	if kind == MediaTV {
		item.Title = d.Name
		item.Year = yearOf(d.FirstAirDate)
		item.Kind = domain.KindSeries
		item.Seasons = d.NumberOfSeasons
	} else if d.Runtime > 0 {
		item.Runtime = fmt.Sprintf("%dm", d.Runtime)
	}

	for _, g := range d.Genres {
		item.Genres = append(item.Genres, g.Name)
	}
	for i, c := range d.Credits.Cast {
		if i >= maxCast {
			break
		}
		item.Cast = append(item.Cast, c.Name)
	}
	if d.PosterPath != "" {
		item.Poster = posterBase + d.PosterPath
	}
	if d.BackdropPath != "" {
		item.Backdrop = backdropBase + d.BackdropPath
	}
	return item
}

// yearOf returns the year part of a YYYY-MM-DD date, or N/A
func yearOf(date string) string {
	year, _, _ := strings.Cut(date, "-")
	if year == "" {
		return unknownYear
	}
	return year
}

// directorOf prefers the Director credit, then Executive Producer
func directorOf(crew []crewMember) string {
	for _, job := range []string{"Director", "Executive Producer"} {
		for _, c := range crew {
			if c.Job == job && c.Name != "" {
				return c.Name
			}
		}
	}
	return "Unknown"
}

// trailerOf prefers a YouTube trailer, then any trailer
func trailerOf(videos []video) string {
	var fallback *video
	for i := range videos {
		v := &videos[i]
		if v.Type != "Trailer" {
			continue
		}
		if v.Site == "YouTube" {
			return youtubeWatch + v.Key
		}
		if fallback == nil {
			fallback = v
		}
	}
	if fallback != nil {
		return youtubeWatch + fallback.Key
	}
	return ""
}
