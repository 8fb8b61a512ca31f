package flowfile_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/flowant/internal/actionspace"
	"github.com/aretw0/flowant/pkg/adapters/flowfile"
	"github.com/aretw0/flowant/pkg/domain"
	contract "github.com/aretw0/flowant/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const faqJSON = `{
  "sections": [
    {"id": "A", "text": "무엇을 도와드릴까요?", "type": "normal", "buttons": [
      {"text": "주문 조회", "nextSectionId": "B"},
      {"text": "상담원 연결", "nextSectionId": "C"}
    ]},
    {"id": "B", "text": "주문번호를 입력하세요", "buttons": [
      {"text": "이전 단계로", "nextSectionId": "A"}
    ]},
    {"id": "C", "text": "연결 중입니다", "type": "stop", "buttons": [
      {"text": "처음으로", "nextSectionId": "A"}
    ]}
  ]
}`

const faqYAML = `
root: A
sections:
  - id: A
    text: Hi
    buttons:
      - text: Orders
        next: B
  - id: B
    text: Orders
    buttons:
      - text: Back
        to: A
`

func TestParse_JSON(t *testing.T) {
	g, err := flowfile.Parse([]byte(faqJSON), flowfile.FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, "A", g.Root())
	assert.Equal(t, []string{"A", "B", "C"}, g.Nodes())
	assert.Equal(t, "주문번호를 입력하세요", g.Label("B"))
	assert.Equal(t, []domain.Edge{
		{From: "A", To: "B", Label: "주문 조회"},
		{From: "A", To: "C", Label: "상담원 연결"},
		{From: "B", To: "A", Label: "이전 단계로"},
	}, g.Edges(), "stop sections have no outgoing edges")
}

func TestParse_YAMLAliases(t *testing.T) {
	g, err := flowfile.Read(strings.NewReader(faqYAML), flowfile.FormatYAML)
	require.NoError(t, err)

	assert.True(t, g.HasEdge("A", "B"))
	label, ok := g.EdgeLabel("B", "A")
	require.True(t, ok)
	assert.Equal(t, "Back", label)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"no sections", `{"sections": []}`, "no sections"},
		{"dangling target", `{"sections": [{"id": "A", "buttons": [{"text": "x", "nextSectionId": "Z"}]}]}`, "not found"},
		{"unknown root", `{"root": "Q", "sections": [{"id": "A"}]}`, "root section"},
		{"duplicate id", `{"sections": [{"id": "A"}, {"id": "A"}]}`, "duplicate"},
		{"whitespace id", `{"sections": [{"id": "A B"}]}`, "whitespace"},
		{"ideographic space id", `{"sections": [{"id": "B　x"}]}`, "whitespace"},
		{"broken json", `{"sections": [`, "parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := flowfile.Parse([]byte(tt.doc), flowfile.FormatJSON)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParse_MultiLineButtonBuildsActionSpace(t *testing.T) {
	g, err := flowfile.Parse([]byte(`{"sections": [
		{"id": "A", "buttons": [{"text": "go", "nextSectionId": "B"}]},
		{"id": "B", "buttons": [{"text": "Track\nmy order", "nextSectionId": "C"}]},
		{"id": "C"}
	]}`), flowfile.FormatJSON)
	require.NoError(t, err)
	label, ok := g.EdgeLabel("B", "C")
	require.True(t, ok)
	assert.Equal(t, "Track\nmy order", label)

	ag, err := actionspace.Build(g, actionspace.WithDistanceThreshold(3))
	require.NoError(t, err)
	assert.Equal(t, 0, ag.CountByKind()[domain.ActionAddEdge])
}

func TestLoader_Contract(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faq.json")
	require.NoError(t, os.WriteFile(path, []byte(faqJSON), 0644))

	contract.GraphLoaderContractTest(t, flowfile.New(path), []string{"A", "B", "C"})
}

func TestLoader_DetectsFormatByExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faq.yml")
	require.NoError(t, os.WriteFile(path, []byte(faqYAML), 0644))

	assert.Equal(t, flowfile.FormatYAML, flowfile.FormatFromPath(path))
	assert.Equal(t, flowfile.FormatJSON, flowfile.FormatFromPath("x.JSON"))

	contract.GraphLoaderContractTest(t, flowfile.New(path), []string{"A", "B"})
}

func TestLoader_MissingFile(t *testing.T) {
	_, err := flowfile.New(filepath.Join(t.TempDir(), "nope.json")).Load(t.Context())
	assert.ErrorIs(t, err, os.ErrNotExist)
}
