package usecase

import (
	"fmt"
	"net/http"
	"slices"

	appErrors "github.com/roysitumorang/kilau/errors"
	sequenceSettingModel "github.com/roysitumorang/kilau/modules/sequence_setting/model"
)

const (
	msgValidationFailed = "validation failed"
	msgDuplicateKey     = "sequence setting already exists"
	msgOwnerNotFound    = "branch not found"
	msgNotFound         = "sequence setting not found"
)

type (
	// problems collects every pre-write failure of a bulk call.
	problems struct {
		kinds    []appErrors.Kind
		messages []string
	}
)

func headline(kind appErrors.Kind) string {
	switch kind {
	case appErrors.KindDuplicateKey:
		return msgDuplicateKey
	case appErrors.KindOwnerNotFound:
		return msgOwnerNotFound
	case appErrors.KindNotFound:
		return msgNotFound
	}
	return msgValidationFailed
}

func itemProblem(i int, message string) string {
	return fmt.Sprintf("Item %d: %s", i+1, message)
}

func duplicateProblem(key sequenceSettingModel.ScopedKey) string {
	return fmt.Sprintf("combination of %s already exists", key)
}

func ownerProblem(branchID string) string {
	return fmt.Sprintf("branch_id %s does not exist", branchID)
}

func (p *problems) add(kind appErrors.Kind, message string) {
	if !slices.Contains(p.kinds, kind) {
		p.kinds = append(p.kinds, kind)
	}
	p.messages = append(p.messages, message)
}

func (p *problems) empty() bool {
	return len(p.messages) == 0
}

// err keeps the kind when every problem shares one and degrades to
// ValidationFailed otherwise. Bulk failures are always a 400.
func (p *problems) err() error {
	switch len(p.kinds) {
	case 0:
		return nil
	case 1:
		kind := p.kinds[0]
		return appErrors.New(kind, headline(kind), p.messages...).WithCode(http.StatusBadRequest)
	}
	return appErrors.ValidationFailed(msgValidationFailed, p.messages...)
}
