package daemon

import (
	"context"
	"sort"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/ealmloff/linknotes/internal/semantic"
	"github.com/ealmloff/linknotes/internal/types"
)

// SearchService ranks sentence chunks of stored notes against a query
// embedding. Both entry points return results ordered by ascending
// distance.
type SearchService struct {
	stores   *Stores
	defaults SearchDefaults
}

func NewSearchService(stores *Stores, defaults SearchDefaults) *SearchService {
	return &SearchService{stores: stores, defaults: defaults}
}

// embedWindow is how many sentences around the cursor feed the context
// query embedding.
const embedWindow = 3

type scoredChunk struct {
	distance float64
	record   *types.NoteRecord
	span     semantic.Span
	spans    []semantic.Span
	index    int
}

// Search finds the chunks nearest to the query text among notes
// carrying every requested tag. Character ranges are rune offsets into
// the note body.
func (s *SearchService) Search(ctx context.Context, workspaceID int, text string, tags []string, results int) ([]types.SearchResult, error) {
	if results <= 0 {
		results = s.defaults.Results
	}
	chunks, err := s.rankChunks(ctx, workspaceID, semantic.Embed(text), func(rec *types.NoteRecord) bool {
		for _, tag := range tags {
			if !rec.HasTag(tag) {
				return false
			}
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	if len(chunks) > results {
		chunks = chunks[:results]
	}

	out := make([]types.SearchResult, 0, len(chunks))
	for _, c := range chunks {
		body := c.record.Body
		charStart := utf8.RuneCountInString(body[:c.span.Start])
		charLen := utf8.RuneCountInString(body[c.span.Start:c.span.End])
		out = append(out, types.SearchResult{
			Distance: c.distance,
			Title:    c.record.Title,
			CharacterRange: types.CharRange{
				Start: charStart,
				End:   charStart + charLen,
			},
		})
	}
	return out, nil
}

// ContextSearch embeds a few sentences around the cursor and returns
// the nearest chunks of other notes, each wrapped in contextSentences
// sentences of its own document. The relevant range is in UTF-16 code
// units of the returned snippet.
func (s *SearchService) ContextSearch(ctx context.Context, workspaceID int, documentTitle string, documentText string, cursorUTF16 int, results, contextSentences int) ([]types.ContextResult, error) {
	if results <= 0 {
		results = s.defaults.ContextResults
	}
	if contextSentences <= 0 {
		contextSentences = s.defaults.ContextSentences
	}

	sentences := semantic.Chunk(documentText)
	if len(sentences) == 0 {
		return nil, invalidError("document has no text to search around", nil)
	}
	cursorByte, ok := utf16OffsetToByte(documentText, cursorUTF16)
	if !ok {
		return nil, invalidError("cursor is outside the document", nil)
	}
	cursorSentence := len(sentences) - 1
	for i, span := range sentences {
		if cursorByte <= span.End {
			cursorSentence = i
			break
		}
	}
	start, end := semantic.SentenceWindow(len(sentences), cursorSentence, embedWindow)
	var query strings.Builder
	for _, span := range sentences[start:end] {
		query.WriteString(documentText[span.Start:span.End])
	}

	chunks, err := s.rankChunks(ctx, workspaceID, semantic.Embed(query.String()), func(rec *types.NoteRecord) bool {
		return documentTitle == "" || rec.Title != documentTitle
	})
	if err != nil {
		return nil, err
	}
	if len(chunks) > results {
		chunks = chunks[:results]
	}

	out := make([]types.ContextResult, 0, len(chunks))
	for _, c := range chunks {
		body := c.record.Body
		ctxStart, ctxEnd := semantic.SentenceWindow(len(c.spans), c.index, contextSentences)
		if ctxEnd == ctxStart {
			// A window of one sentence around the first sentence is
			// empty; keep at least the hit itself.
			ctxEnd = ctxStart + 1
		}
		contextRange := semantic.Span{
			Start: c.spans[ctxStart].Start,
			End:   c.spans[ctxEnd-1].End,
		}
		snippet := body[contextRange.Start:contextRange.End]
		relStart := c.span.Start - contextRange.Start
		relEnd := c.span.End - contextRange.Start
		out = append(out, types.ContextResult{
			Distance:      c.distance,
			Title:         c.record.Title,
			Text:          snippet,
			RelevantRange: utf8RangeToUTF16(snippet, relStart, relEnd),
		})
	}
	return out, nil
}

func (s *SearchService) rankChunks(ctx context.Context, workspaceID int, query semantic.Vector, include func(*types.NoteRecord) bool) ([]scoredChunk, error) {
	if _, ok, err := s.stores.Workspaces.Get(ctx, workspaceID); err != nil {
		return nil, unavailableError("workspace lookup failed", err)
	} else if !ok {
		return nil, notFoundError("workspace not found", nil)
	}
	records, err := s.stores.Notes.List(ctx, workspaceID)
	if err != nil {
		return nil, unavailableError("list notes failed", err)
	}

	var chunks []scoredChunk
	for _, rec := range records {
		if !include(rec) {
			continue
		}
		spans := semantic.Chunk(rec.Body)
		vectors := semantic.EmbedSpans(rec.Body, spans)
		for i, span := range spans {
			chunks = append(chunks, scoredChunk{
				distance: semantic.Distance(query, vectors[i]),
				record:   rec,
				span:     span,
				spans:    spans,
				index:    i,
			})
		}
	}
	sort.SliceStable(chunks, func(i, j int) bool {
		return chunks[i].distance < chunks[j].distance
	})
	return chunks, nil
}

// utf16OffsetToByte locates the byte offset of the character at the
// given UTF-16 offset. Reports false when the offset lies past the end
// of a non-empty document.
func utf16OffsetToByte(text string, offset int) (int, bool) {
	if offset <= 0 {
		return 0, true
	}
	units := 0
	for i, r := range text {
		if units >= offset {
			return i, true
		}
		units += utf16.RuneLen(r)
	}
	if units >= offset {
		return len(text), true
	}
	return 0, false
}

func utf8RangeToUTF16(text string, start, end int) types.CharRange {
	if start < 0 {
		start = 0
	}
	if end > len(text) {
		end = len(text)
	}
	if end < start {
		end = start
	}
	u16Start := types.UTF16Len(text[:start])
	u16Len := types.UTF16Len(text[start:end])
	return types.CharRange{Start: u16Start, End: u16Start + u16Len}
}
