package catalog

import (
	"fmt"

	"github.com/rsekulic/videoteka-v1/internal/domain"
)

// GenreAll disables the genre filter
const GenreAll = "All"

// Genres is the genre bar in display order
var Genres = []string{GenreAll, "Sci-Fi", "Drama", "Thriller", "Action", "Comedy", "Mystery", "Biography"}

func picsum(seed string, w, h int) string {
	return fmt.Sprintf("https://picsum.photos/seed/%s/%d/%d", seed, w, h)
}

// Samples returns a fresh copy of the bundled sample set shown in demo mode.
// Sample identifiers are local tokens, never canonical.
func Samples() []domain.Item {
	return domain.CloneItems(samples)
}

var samples = []domain.Item{
	{
		ID:          "1",
		Title:       "Interstellar",
		Year:        "2014",
		Kind:        domain.KindMovie,
		Genres:      []string{"Sci-Fi", "Drama", "Adventure"},
		Description: "When Earth becomes uninhabitable, a farmer and ex-pilot, Joseph Cooper, is tasked to pilot a spacecraft, along with a team of researchers, to find a new planet for humans.",
		Poster:      picsum("interstellar", 400, 600),
		Backdrop:    picsum("interstellar_bg", 1200, 600),
		Runtime:     "2h 49m",
		Director:    "Christopher Nolan",
		Cast:        []string{"Matthew McConaughey", "Anne Hathaway", "Jessica Chastain"},
	},
	{
		ID:          "2",
		Title:       "Succession",
		Year:        "2018-2023",
		Kind:        domain.KindSeries,
		Genres:      []string{"Drama", "Dark Comedy"},
		Description: "The Roy family is known for controlling the biggest media and entertainment company in the world. However, their world changes when their father steps down from the company.",
		Poster:      picsum("succession", 400, 600),
		Backdrop:    picsum("succession_bg", 1200, 600),
		Seasons:     4,
		Director:    "Jesse Armstrong",
		Cast:        []string{"Brian Cox", "Jeremy Strong", "Sarah Snook"},
	},
	{
		ID:          "3",
		Title:       "Dune: Part Two",
		Year:        "2024",
		Kind:        domain.KindMovie,
		Genres:      []string{"Sci-Fi", "Action"},
		Description: "Paul Atreides unites with Chani and the Fremen while on a warpath of revenge against the conspirators who destroyed his family.",
		Poster:      picsum("dune2", 400, 600),
		Backdrop:    picsum("dune2_bg", 1200, 600),
		Runtime:     "2h 46m",
		Director:    "Denis Villeneuve",
		Cast:        []string{"Timothée Chalamet", "Zendaya", "Rebecca Ferguson"},
	},
	{
		ID:          "4",
		Title:       "Severance",
		Year:        "2022",
		Kind:        domain.KindSeries,
		Genres:      []string{"Sci-Fi", "Thriller"},
		Description: "Mark leads a team of office workers whose memories have been surgically divided between their work and personal lives.",
		Poster:      picsum("severance", 400, 600),
		Backdrop:    picsum("severance_bg", 1200, 600),
		Seasons:     1,
		Director:    "Ben Stiller",
		Cast:        []string{"Adam Scott", "Zach Cherry", "Britt Lower"},
	},
	{
		ID:          "5",
		Title:       "The Bear",
		Year:        "2022",
		Kind:        domain.KindSeries,
		Genres:      []string{"Drama", "Comedy"},
		Description: "A young chef from the fine dining world returns to Chicago to run his family sandwich shop.",
		Poster:      picsum("thebear", 400, 600),
		Backdrop:    picsum("thebear_bg", 1200, 600),
		Seasons:     3,
		Director:    "Christopher Storer",
		Cast:        []string{"Jeremy Allen White", "Ebon Moss-Bachrach", "Ayo Edebiri"},
	},
	{
		ID:          "6",
		Title:       "Oppenheimer",
		Year:        "2023",
		Kind:        domain.KindMovie,
		Genres:      []string{"Biography", "Drama", "History"},
		Description: "The story of American scientist J. Robert Oppenheimer and his role in the development of the atomic bomb.",
		Poster:      picsum("oppenheimer", 400, 600),
		Backdrop:    picsum("oppenheimer_bg", 1200, 600),
		Runtime:     "3h",
		Director:    "Christopher Nolan",
		Cast:        []string{"Cillian Murphy", "Emily Blunt", "Matt Damon"},
	},
	{
		ID:          "7",
		Title:       "Dark",
		Year:        "2017-2020",
		Kind:        domain.KindSeries,
		Genres:      []string{"Sci-Fi", "Mystery", "Thriller"},
		Description: "A family saga with a supernatural twist, set in a German town where the disappearance of two young children exposes the relationships among four families.",
		Poster:      picsum("dark", 400, 600),
		Backdrop:    picsum("dark_bg", 1200, 600),
		Seasons:     3,
		Director:    "Baran bo Odar",
		Cast:        []string{"Louis Hofmann", "Karoline Eichhorn", "Lisa Vicari"},
	},
	{
		ID:          "8",
		Title:       "Parasite",
		Year:        "2019",
		Kind:        domain.KindMovie,
		Genres:      []string{"Thriller", "Drama", "Comedy"},
		Description: "Greed and class discrimination threaten the newly formed symbiotic relationship between the wealthy Park family and the destitute Kim clan.",
		Poster:      picsum("parasite", 400, 600),
		Backdrop:    picsum("parasite_bg", 1200, 600),
		Runtime:     "2h 12m",
		Director:    "Bong Joon Ho",
		Cast:        []string{"Song Kang-ho", "Lee Sun-kyun", "Cho Yeo-jeong"},
	},
}
