// Package content defines the structured content blocks that make up a
// generated learning day. Blocks form a tagged union discriminated by the
// "type" JSON field so documents are validated before they are persisted,
// rather than carried around as open maps.
package content

import (
	"encoding/json"
	"fmt"
)

// Kind identifies a content block variant.
type Kind string

// Supported block kinds.
const (
	KindRead            Kind = "read"
	KindAudio           Kind = "audio"
	KindQuizMCQ         Kind = "quiz_mcq"
	KindQuizTF          Kind = "quiz_tf"
	KindSentenceShuffle Kind = "sentence_shuffle"
	KindMatchingPairs   Kind = "matching_pairs"
	KindImageMCQ        Kind = "image_mcq"
	KindClozeMCQ        Kind = "cloze_mcq"
	KindScenarioMCQ     Kind = "scenario_mcq"
)

// Block is a single unit of learning content within a day.
type Block interface {
	// Kind returns the block's discriminator.
	Kind() Kind

	// XPValue returns the experience points awarded for completing the block.
	XPValue() int

	// Validate checks structural integrity before persisting.
	Validate() error
}

// ReadBlock is a short reading passage with an optional part title.
type ReadBlock struct {
	Type  Kind   `json:"type"`
	XP    int    `json:"xp"`
	Title string `json:"title,omitempty"`
	Body  string `json:"body"`
}

func (b *ReadBlock) Kind() Kind   { return KindRead }
func (b *ReadBlock) XPValue() int { return b.XP }

func (b *ReadBlock) Validate() error {
	if b.Body == "" {
		return fmt.Errorf("read block: empty body")
	}
	return nil
}

// AudioBlock pairs narration text with a pre-rendered audio URL.
type AudioBlock struct {
	Type     Kind   `json:"type"`
	XP       int    `json:"xp"`
	Text     string `json:"text"`
	AudioURL string `json:"audioUrl"`
}

func (b *AudioBlock) Kind() Kind   { return KindAudio }
func (b *AudioBlock) XPValue() int { return b.XP }

func (b *AudioBlock) Validate() error {
	if b.Text == "" {
		return fmt.Errorf("audio block: empty text")
	}
	return nil
}

// QuizMCQBlock is a multiple-choice question.
type QuizMCQBlock struct {
	Type     Kind     `json:"type"`
	XP       int      `json:"xp"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   int      `json:"answer"`
}

func (b *QuizMCQBlock) Kind() Kind   { return KindQuizMCQ }
func (b *QuizMCQBlock) XPValue() int { return b.XP }

func (b *QuizMCQBlock) Validate() error {
	if b.Question == "" {
		return fmt.Errorf("quiz_mcq block: empty question")
	}
	return validateOptions("quiz_mcq", b.Options, b.Answer)
}

// QuizTFBlock is a true/false statement.
type QuizTFBlock struct {
	Type      Kind   `json:"type"`
	XP        int    `json:"xp"`
	Statement string `json:"statement"`
	Answer    bool   `json:"answer"`
}

func (b *QuizTFBlock) Kind() Kind   { return KindQuizTF }
func (b *QuizTFBlock) XPValue() int { return b.XP }

func (b *QuizTFBlock) Validate() error {
	if b.Statement == "" {
		return fmt.Errorf("quiz_tf block: empty statement")
	}
	return nil
}

// SentenceShuffleBlock asks the user to reorder tokens into a sentence.
type SentenceShuffleBlock struct {
	Type   Kind     `json:"type"`
	XP     int      `json:"xp"`
	Tokens []string `json:"tokens"`
	Answer []string `json:"answer"`
}

func (b *SentenceShuffleBlock) Kind() Kind   { return KindSentenceShuffle }
func (b *SentenceShuffleBlock) XPValue() int { return b.XP }

func (b *SentenceShuffleBlock) Validate() error {
	if len(b.Tokens) == 0 {
		return fmt.Errorf("sentence_shuffle block: no tokens")
	}
	if len(b.Answer) != len(b.Tokens) {
		return fmt.Errorf("sentence_shuffle block: answer length %d does not match %d tokens", len(b.Answer), len(b.Tokens))
	}
	return nil
}

// MatchingPairsBlock asks the user to match terms to meanings.
// Answer[i] is the index into RightItems matching LeftItems[i].
type MatchingPairsBlock struct {
	Type       Kind     `json:"type"`
	XP         int      `json:"xp"`
	LeftItems  []string `json:"left_items"`
	RightItems []string `json:"right_items"`
	Answer     []int    `json:"answer"`
}

func (b *MatchingPairsBlock) Kind() Kind   { return KindMatchingPairs }
func (b *MatchingPairsBlock) XPValue() int { return b.XP }

func (b *MatchingPairsBlock) Validate() error {
	if len(b.LeftItems) == 0 {
		return fmt.Errorf("matching_pairs block: no items")
	}
	if len(b.RightItems) != len(b.LeftItems) || len(b.Answer) != len(b.LeftItems) {
		return fmt.Errorf("matching_pairs block: mismatched item/answer counts")
	}
	for _, idx := range b.Answer {
		if idx < 0 || idx >= len(b.RightItems) {
			return fmt.Errorf("matching_pairs block: answer index %d out of range", idx)
		}
	}
	return nil
}

// ImageMCQBlock is a multiple-choice question over images.
type ImageMCQBlock struct {
	Type      Kind     `json:"type"`
	XP        int      `json:"xp"`
	Prompt    string   `json:"prompt"`
	ImageURLs []string `json:"imageUrls"`
	Options   []string `json:"options"`
	Answer    int      `json:"answer"`
}

func (b *ImageMCQBlock) Kind() Kind   { return KindImageMCQ }
func (b *ImageMCQBlock) XPValue() int { return b.XP }

func (b *ImageMCQBlock) Validate() error {
	if b.Prompt == "" {
		return fmt.Errorf("image_mcq block: empty prompt")
	}
	return validateOptions("image_mcq", b.Options, b.Answer)
}

// ClozeMCQBlock is a fill-in-the-blank question.
type ClozeMCQBlock struct {
	Type       Kind     `json:"type"`
	XP         int      `json:"xp"`
	BeforeText string   `json:"before_text"`
	AfterText  string   `json:"after_text"`
	Options    []string `json:"options"`
	Answer     int      `json:"answer"`
}

func (b *ClozeMCQBlock) Kind() Kind   { return KindClozeMCQ }
func (b *ClozeMCQBlock) XPValue() int { return b.XP }

func (b *ClozeMCQBlock) Validate() error {
	if b.BeforeText == "" && b.AfterText == "" {
		return fmt.Errorf("cloze_mcq block: empty surrounding text")
	}
	return validateOptions("cloze_mcq", b.Options, b.Answer)
}

// ScenarioMCQBlock is a situational judgement question.
type ScenarioMCQBlock struct {
	Type    Kind     `json:"type"`
	XP      int      `json:"xp"`
	Context string   `json:"context"`
	Options []string `json:"options"`
	Answer  int      `json:"answer"`
}

func (b *ScenarioMCQBlock) Kind() Kind   { return KindScenarioMCQ }
func (b *ScenarioMCQBlock) XPValue() int { return b.XP }

func (b *ScenarioMCQBlock) Validate() error {
	if b.Context == "" {
		return fmt.Errorf("scenario_mcq block: empty context")
	}
	return validateOptions("scenario_mcq", b.Options, b.Answer)
}

// validateOptions checks a multiple-choice option list and its answer index.
func validateOptions(kind string, options []string, answer int) error {
	if len(options) < 2 {
		return fmt.Errorf("%s block: needs at least 2 options, got %d", kind, len(options))
	}
	if answer < 0 || answer >= len(options) {
		return fmt.Errorf("%s block: answer index %d out of range [0,%d)", kind, answer, len(options))
	}
	return nil
}

// BlockList is a JSON-serializable ordered collection of blocks.
type BlockList []Block

// UnmarshalJSON decodes each element into its concrete block type based on
// the "type" discriminator, then validates it.
func (l *BlockList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	blocks := make([]Block, 0, len(raw))
	for i, item := range raw {
		block, err := unmarshalBlock(item)
		if err != nil {
			return fmt.Errorf("block %d: %w", i, err)
		}
		blocks = append(blocks, block)
	}

	*l = blocks
	return nil
}

// unmarshalBlock decodes a single block by discriminator.
func unmarshalBlock(data []byte) (Block, error) {
	var probe struct {
		Type Kind `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, err
	}

	var block Block
	switch probe.Type {
	case KindRead:
		block = &ReadBlock{}
	case KindAudio:
		block = &AudioBlock{}
	case KindQuizMCQ:
		block = &QuizMCQBlock{}
	case KindQuizTF:
		block = &QuizTFBlock{}
	case KindSentenceShuffle:
		block = &SentenceShuffleBlock{}
	case KindMatchingPairs:
		block = &MatchingPairsBlock{}
	case KindImageMCQ:
		block = &ImageMCQBlock{}
	case KindClozeMCQ:
		block = &ClozeMCQBlock{}
	case KindScenarioMCQ:
		block = &ScenarioMCQBlock{}
	default:
		return nil, fmt.Errorf("unknown block type %q", probe.Type)
	}

	if err := json.Unmarshal(data, block); err != nil {
		return nil, err
	}
	if err := block.Validate(); err != nil {
		return nil, err
	}
	return block, nil
}

// Validate checks every block in the list.
func (l BlockList) Validate() error {
	for i, block := range l {
		if err := block.Validate(); err != nil {
			return fmt.Errorf("block %d: %w", i, err)
		}
	}
	return nil
}

// TotalXP sums the XP values of all blocks.
func (l BlockList) TotalXP() int {
	total := 0
	for _, block := range l {
		total += block.XPValue()
	}
	return total
}
