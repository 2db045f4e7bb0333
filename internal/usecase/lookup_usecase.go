package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/eslkit/vocadeck/internal/entity"
)

// WordGenerator is the AI lookup collaborator: given a headword it
// produces a full word record, or identifies the base form of an
// inflected word. Failures surface as entity.ErrRemoteService or
// entity.ErrMalformedResponse; nothing is persisted on failure.
type WordGenerator interface {
	GenerateWord(ctx context.Context, word, sentence string) (*entity.Word, error)
	IdentifyBaseForm(ctx context.Context, word, sentence string) (*entity.BaseFormInfo, error)
}

// LookupUsecase fronts the AI lookup with input validation. Accepted
// records are persisted by the caller through WordUsecase; a failed
// lookup leaves state unchanged.
type LookupUsecase interface {
	GenerateWord(ctx context.Context, word, sentence string) (*entity.Word, error)
	IdentifyBaseForm(ctx context.Context, word, sentence string) (*entity.BaseFormInfo, error)
}

type lookupUsecase struct {
	generator WordGenerator
}

// NewLookupUsecase wires the lookup logic with its generator.
func NewLookupUsecase(generator WordGenerator) LookupUsecase {
	return &lookupUsecase{generator: generator}
}

func (u *lookupUsecase) GenerateWord(ctx context.Context, word, sentence string) (*entity.Word, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil, fmt.Errorf("%w: word required", entity.ErrValidation)
	}
	return u.generator.GenerateWord(ctx, word, strings.TrimSpace(sentence))
}

func (u *lookupUsecase) IdentifyBaseForm(ctx context.Context, word, sentence string) (*entity.BaseFormInfo, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil, fmt.Errorf("%w: word required", entity.ErrValidation)
	}
	return u.generator.IdentifyBaseForm(ctx, word, strings.TrimSpace(sentence))
}
