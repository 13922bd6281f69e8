package filesystem

import (
	"strings"

	"fboard/internal/domain/entity"
)

// moveStagingPrefix names the temporary folder a card is copied into before
// it takes its final name in the destination stage
const moveStagingPrefix = entity.InternalPrefix + "move-"

// newCardPrefix names the folder a new card is written into before it
// appears in its stage
const newCardPrefix = entity.InternalPrefix + "new-"

// stagingName returns the staging folder used while moving folder
func stagingName(folder string) string {
	return moveStagingPrefix + folder
}

// newCardStagingName returns the staging folder used while creating folder
func newCardStagingName(folder string) string {
	return newCardPrefix + folder
}

// isInternal reports whether name is managed by the board itself and must
// not show up as a stage, card or attachment
func isInternal(name string) bool {
	return strings.HasPrefix(name, entity.InternalPrefix)
}
