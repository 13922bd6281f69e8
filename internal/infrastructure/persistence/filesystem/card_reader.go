package filesystem

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"fboard/internal/domain/entity"
	"fboard/internal/infrastructure/persistence/mapper"
	"fboard/internal/infrastructure/serialization"
	"fboard/internal/infrastructure/storage"
)

// CardReader turns a card folder into a Card. Unreadable side files and
// attachments are logged and skipped so one bad file never hides a card.
type CardReader struct {
	logger logrus.FieldLogger
}

// NewCardReader creates a CardReader
func NewCardReader(logger logrus.FieldLogger) *CardReader {
	return &CardReader{logger: logger}
}

// ReadCard reads the folder of a card in stageKey. It fails only when the
// folder itself cannot be listed.
func (r *CardReader) ReadCard(ctx context.Context, stageKey string, folder storage.Dir) (*entity.Card, error) {
	entries, err := folder.Entries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list card folder %s: %w", folder.Name(), err)
	}

	card := &entity.Card{
		Stage: stageKey,
		Title: folder.Name(),
	}
	log := r.logger.WithFields(logrus.Fields{"stage": stageKey, "card": card.Title})

	var updatedAt time.Time
	track := func(t time.Time) {
		if t.After(updatedAt) {
			updatedAt = t
		}
	}
	vanished := false
	skip := func(name string, err error) {
		if storage.IsNotFound(err) {
			vanished = true
		}
		log.WithError(err).WithField("file", name).Warn("Skipping unreadable card file")
	}

	for _, entry := range entries {
		if entry.Kind != storage.KindFile || isInternal(entry.Name) {
			continue
		}

		switch entry.Name {
		case entity.DescriptionFile:
			data, modTime, err := storage.ReadFile(ctx, folder, entry.Name)
			if err != nil {
				skip(entry.Name, err)
				continue
			}
			card.Description = string(data)
			track(modTime)

		case entity.CommentsFile:
			data, modTime, err := storage.ReadFile(ctx, folder, entry.Name)
			if err != nil {
				skip(entry.Name, err)
				continue
			}
			card.Comments = serialization.DecodeComments(data)
			track(modTime)

		case entity.CardStateFile:
			data, _, err := storage.ReadFile(ctx, folder, entry.Name)
			if err != nil {
				skip(entry.Name, err)
				continue
			}
			state, err := serialization.DecodeCardState(data)
			if err != nil {
				log.WithError(err).WithField("file", entry.Name).Warn("Ignoring malformed card state")
				continue
			}
			mapper.ApplyCardState(card, state)

		default:
			attachment, err := r.readAttachment(ctx, folder, entry.Name)
			if err != nil {
				skip(entry.Name, err)
				continue
			}
			card.Attachments = append(card.Attachments, attachment)
			track(attachment.LastModified)
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	if vanished {
		if _, err := folder.Entries(ctx); storage.IsNotFound(err) {
			return nil, fmt.Errorf("card folder %s disappeared while reading: %w", card.Title, err)
		}
	}

	if card.Comments == nil {
		card.Comments = []string{}
	}
	entity.SortAttachments(card.Attachments)
	card.UpdatedAt = updatedAt
	return card, nil
}

func (r *CardReader) readAttachment(ctx context.Context, folder storage.Dir, name string) (entity.Attachment, error) {
	file, err := folder.File(ctx, name, false)
	if err != nil {
		return entity.Attachment{}, err
	}
	info, err := file.Stat(ctx)
	if err != nil {
		return entity.Attachment{}, err
	}
	return entity.Attachment{Name: name, Size: info.Size, LastModified: info.ModTime}, nil
}
