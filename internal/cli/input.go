// Package cli handles command-line input for the DBG harness and manual
// checking of a spell-check dictionary.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/halvardlie/spellwright/internal/distance"
	"github.com/halvardlie/spellwright/internal/suggest"
	"github.com/halvardlie/spellwright/internal/utils"
	"github.com/halvardlie/spellwright/pkg/spellcheck"
)

var (
	knownStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	unknownStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
	tableStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// InputHandler reads lines from stdin and dispatches each one to either the
// checker or the suggester, depending on whether it starts with the
// configured check prefix.
type InputHandler struct {
	dict         *spellcheck.Dictionary
	checkPrefix  string
	limit        int
	maxDist      float64
	noFilter     bool
	requestCount int
}

// NewInputHandler builds an InputHandler bound to dict.
func NewInputHandler(dict *spellcheck.Dictionary, checkPrefix string, limit int, maxDist float64, noFilter bool) *InputHandler {
	if checkPrefix == "" {
		checkPrefix = "?"
	}
	return &InputHandler{
		dict:        dict,
		checkPrefix: checkPrefix,
		limit:       limit,
		maxDist:     maxDist,
		noFilter:    noFilter,
	}
}

// Start begins the interface loop: prompt, read a line, dispatch, repeat.
// It returns when reading from stdin fails (including EOF on Ctrl+D).
func (h *InputHandler) Start() error {
	log.Print("spellwright CLI [DBG]")
	reader := bufio.NewReader(os.Stdin)
	log.Printf("prefix a line with %q to check a word, otherwise it's treated as a suggestion query:", h.checkPrefix)

	for {
		log.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		h.handleLine(line)
	}
}

func (h *InputHandler) handleLine(line string) {
	h.requestCount++

	if utils.HasPrefixIgnoreCase(line, h.checkPrefix) {
		word := strings.TrimSpace(line[len(h.checkPrefix):])
		h.handleCheck(word)
		return
	}
	h.handleSuggest(line)
}

func (h *InputHandler) handleCheck(word string) {
	if word == "" {
		log.Errorf("empty word after check prefix")
		return
	}
	if known := h.dict.Check(word); known {
		fmt.Println(knownStyle.Render("✓"), word)
	} else {
		fmt.Println(unknownStyle.Render("✗"), word)
	}
}

func (h *InputHandler) handleSuggest(word string) {
	if !h.noFilter && !utils.IsValidInput(word) {
		log.Infof("filtered out query: %q", word)
		return
	}

	words := h.dict.Suggest(word, suggest.Options{MaxDist: h.maxDist, Limit: h.limit})
	if len(words) == 0 {
		log.Warnf("no suggestions for %q", word)
		return
	}

	rows := make([]string, 0, len(words))
	for _, w := range words {
		d := distance.Levenshtein(word, w)
		rows = append(rows, fmt.Sprintf("%-24s | %d", w, d))
	}
	fmt.Println(tableStyle.Render(strings.Join(rows, "\n")))
}
