package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rsekulic/videoteka-v1/internal/domain"
	"google.golang.org/genai"
)

type fakeGenerator struct {
	reply   string
	err     error
	prompts []string
	configs []*genai.GenerateContentConfig
}

func (f *fakeGenerator) GenerateContent(_ context.Context, _ string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	for _, c := range contents {
		for _, p := range c.Parts {
			f.prompts = append(f.prompts, p.Text)
		}
	}
	f.configs = append(f.configs, config)
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: genai.NewContentFromText(f.reply, genai.RoleModel)}},
	}, nil
}

const bearJSON = `{"title":"The Bear","year":"2022","type":"TV Series","genre":["Drama","Comedy"],
"description":"A chef returns home.","poster":"https://img/p.jpg","backdrop":"https://img/b.jpg",
"seasons":3,"cast":["Jeremy Allen White"],"critic_score":"99%"}`

func TestFindParsesItemAndUsesSearchTool(t *testing.T) {
	gen := &fakeGenerator{reply: bearJSON}
	c := NewWithGenerator(gen, "", nil)

	item, err := c.Find(context.Background(), "the bear")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if item.Title != "The Bear" || item.Kind != domain.KindSeries || item.Seasons != 3 {
		t.Errorf("unexpected item: %+v", item)
	}
	if item.ID != "" {
		t.Errorf("generated item should have no id, got %q", item.ID)
	}
	if len(gen.prompts) != 1 || !strings.Contains(gen.prompts[0], `"the bear"`) {
		t.Errorf("prompt does not quote the input: %v", gen.prompts)
	}
	cfg := gen.configs[0]
	if len(cfg.Tools) != 1 || cfg.Tools[0].GoogleSearch == nil {
		t.Error("search grounding tool not enabled")
	}
	if cfg.ResponseSchema == nil || len(cfg.ResponseSchema.Required) != 8 {
		t.Error("response schema missing required fields")
	}
}

func TestRejectsPartialOrEmptyResponses(t *testing.T) {
	cases := map[string]string{
		"empty":          "",
		"not json":       "I could not find it",
		"missing poster": `{"title":"X","year":"2020","type":"Movie","genre":[],"description":"d","backdrop":"b","cast":[]}`,
		"bad type":       `{"title":"X","year":"2020","type":"Film","genre":[],"description":"d","poster":"p","backdrop":"b","cast":[]}`,
	}
	for name, reply := range cases {
		t.Run(name, func(t *testing.T) {
			c := NewWithGenerator(&fakeGenerator{reply: reply}, "", nil)
			if item, err := c.Find(context.Background(), "x"); err == nil {
				t.Errorf("expected failure, got %+v", item)
			}
		})
	}
}

func TestFencedJSONAccepted(t *testing.T) {
	c := NewWithGenerator(&fakeGenerator{reply: "```json\n" + bearJSON + "\n```"}, "", nil)
	if _, err := c.Find(context.Background(), "the bear"); err != nil {
		t.Fatalf("fenced reply: %v", err)
	}
}

func TestScores(t *testing.T) {
	c := NewWithGenerator(&fakeGenerator{reply: `{"critic_score":"93%","audience_score":"88%"}`}, "", nil)
	s, err := c.Scores(context.Background(), "Dune: Part Two", "2024", domain.KindMovie)
	if err != nil {
		t.Fatalf("scores: %v", err)
	}
	if s.Critic != "93%" || s.Audience != "88%" {
		t.Errorf("unexpected scores: %+v", s)
	}

	failing := NewWithGenerator(&fakeGenerator{err: errors.New("quota")}, "", nil)
	if _, err := failing.Scores(context.Background(), "x", "2020", domain.KindMovie); err == nil {
		t.Error("expected error from failing generator")
	}
}

func TestDisabledClient(t *testing.T) {
	c, err := NewClient(context.Background(), "", "", nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if c.Enabled() {
		t.Fatal("client without key reports enabled")
	}
	if _, err := c.Find(context.Background(), "x"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}
