package filesystem

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"fboard/internal/domain/entity"
	"fboard/internal/domain/repository"
	"fboard/internal/infrastructure/persistence/mapper"
	"fboard/internal/infrastructure/serialization"
	"fboard/internal/infrastructure/storage"
)

const defaultLoadConcurrency = 4

// Options tunes a BoardRepositoryImpl
type Options struct {
	// ArchivedStage is the stage folder archived cards are moved into
	ArchivedStage string
	// CreateEmptyComments pre-creates comments.txt for new cards
	CreateEmptyComments bool
	// LoadConcurrency bounds how many stages are read at once
	LoadConcurrency int
	// Now is the clock used for archive timestamps
	Now func() time.Time
	// Logger receives a warning for every skipped stage, card or file
	Logger logrus.FieldLogger
}

// BoardRepositoryImpl implements BoardRepository on top of a storage.Dir
// root. Every call re-resolves stages and cards by name from the root.
type BoardRepositoryImpl struct {
	root                storage.Dir
	reader              *CardReader
	archivedStage       string
	createEmptyComments bool
	loadConcurrency     int
	now                 func() time.Time
	logger              logrus.FieldLogger
}

// NewBoardRepository creates a board repository rooted at root
func NewBoardRepository(root storage.Dir, opts Options) repository.BoardRepository {
	return newBoardRepository(root, opts)
}

func newBoardRepository(root storage.Dir, opts Options) *BoardRepositoryImpl {
	if opts.ArchivedStage == "" {
		opts.ArchivedStage = entity.DefaultArchivedStage
	}
	if opts.LoadConcurrency <= 0 {
		opts.LoadConcurrency = defaultLoadConcurrency
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	return &BoardRepositoryImpl{
		root:                root,
		reader:              NewCardReader(opts.Logger),
		archivedStage:       opts.ArchivedStage,
		createEmptyComments: opts.CreateEmptyComments,
		loadConcurrency:     opts.LoadConcurrency,
		now:                 opts.Now,
		logger:              opts.Logger,
	}
}

// ArchivedStage returns the configured archived stage name
func (r *BoardRepositoryImpl) ArchivedStage() string {
	return r.archivedStage
}

// Load reads every stage, card and the legend registry
func (r *BoardRepositoryImpl) Load(ctx context.Context) (*entity.Board, error) {
	if err := r.requireAccess(ctx); err != nil {
		return nil, err
	}

	entries, err := r.root.Entries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list stages: %w", err)
	}

	stages := make([]entity.Stage, 0, len(entries))
	for _, entry := range entries {
		if entry.Kind != storage.KindDir || isInternal(entry.Name) {
			continue
		}
		stages = append(stages, entity.NewStage(entry.Name))
	}
	entity.SortStages(stages)

	results := make([][]*entity.Card, len(stages))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.loadConcurrency)
	for i, stage := range stages {
		g.Go(func() error {
			results[i] = r.loadStage(gctx, stage.Key)
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	board := &entity.Board{
		Root:             r.root.Name(),
		Stages:           stages,
		CardsByStage:     make(map[string][]*entity.Card, len(stages)),
		ArchivedStageKey: r.archivedStage,
	}
	for i, stage := range stages {
		board.CardsByStage[stage.Key] = results[i]
		if strings.EqualFold(stage.Key, r.archivedStage) {
			board.ArchivedStageKey = stage.Key
		}
	}

	legends, err := r.LoadLegends(ctx)
	if err != nil {
		r.logger.WithError(err).Warn("Failed to load legends, continuing without them")
		legends = nil
	}
	board.Legends = legends

	return board, nil
}

// loadStage reads the cards of one stage. A stage that cannot be opened
// or listed yields no cards.
func (r *BoardRepositoryImpl) loadStage(ctx context.Context, key string) []*entity.Card {
	log := r.logger.WithField("stage", key)
	cards := make([]*entity.Card, 0)

	stageDir, err := r.root.Dir(ctx, key, false)
	if err != nil {
		log.WithError(err).Warn("Skipping stage that could not be opened")
		return cards
	}

	entries, err := stageDir.Entries(ctx)
	if err != nil {
		log.WithError(err).Warn("Skipping stage that could not be listed")
		return cards
	}

	for _, entry := range entries {
		if entry.Kind != storage.KindDir || isInternal(entry.Name) {
			continue
		}
		cardDir, err := stageDir.Dir(ctx, entry.Name, false)
		if err != nil {
			log.WithError(err).WithField("card", entry.Name).Warn("Skipping card that could not be opened")
			continue
		}
		card, err := r.reader.ReadCard(ctx, key, cardDir)
		if err != nil {
			log.WithError(err).WithField("card", entry.Name).Warn("Skipping card that could not be read")
			continue
		}
		cards = append(cards, card)
	}

	entity.SortCards(cards)
	return cards
}

// ReadCard reads a single card
func (r *BoardRepositoryImpl) ReadCard(ctx context.Context, ref entity.CardRef) (*entity.Card, error) {
	_, cardDir, err := r.openCard(ctx, ref)
	if err != nil {
		return nil, err
	}
	return r.reader.ReadCard(ctx, ref.Stage, cardDir)
}

// CreateStage opens or creates a stage folder
func (r *BoardRepositoryImpl) CreateStage(ctx context.Context, name string) (entity.Stage, error) {
	if err := entity.ValidateStageName(name); err != nil {
		return entity.Stage{}, err
	}
	if err := r.requireAccess(ctx); err != nil {
		return entity.Stage{}, err
	}

	name = strings.TrimSpace(name)
	if _, err := r.root.Dir(ctx, name, true); err != nil {
		return entity.Stage{}, fmt.Errorf("failed to create stage %s: %w", name, err)
	}
	return entity.NewStage(name), nil
}

// CreateCard creates a card folder named after title, adding " (2)",
// " (3)", ... when the name is taken
func (r *BoardRepositoryImpl) CreateCard(ctx context.Context, stage, title, description string) (*entity.Card, error) {
	if err := entity.ValidateStageName(stage); err != nil {
		return nil, err
	}
	if err := entity.ValidateCardTitle(title); err != nil {
		return nil, err
	}
	if err := r.requireAccess(ctx); err != nil {
		return nil, err
	}

	stage = strings.TrimSpace(stage)
	stageDir, err := r.root.Dir(ctx, stage, true)
	if err != nil {
		return nil, fmt.Errorf("failed to open stage %s: %w", stage, err)
	}

	folder, err := uniqueFolderName(ctx, stageDir, strings.TrimSpace(title))
	if err != nil {
		return nil, err
	}
	if err := r.buildCard(ctx, stageDir, folder, description); err != nil {
		return nil, err
	}

	cardDir, err := stageDir.Dir(ctx, folder, false)
	if err != nil {
		return nil, fmt.Errorf("failed to open card folder %s: %w", folder, err)
	}
	return r.reader.ReadCard(ctx, stage, cardDir)
}

// buildCard writes the side files into a staging folder and renames it to
// folder, so a failed create leaves no half written card behind
func (r *BoardRepositoryImpl) buildCard(ctx context.Context, stageDir storage.Dir, folder, description string) error {
	staging := newCardStagingName(folder)
	if err := stageDir.Remove(ctx, staging, true); err != nil {
		return fmt.Errorf("failed to clear staging folder: %w", err)
	}
	stagingDir, err := stageDir.Dir(ctx, staging, true)
	if err != nil {
		return fmt.Errorf("failed to create card folder %s: %w", folder, err)
	}

	if err := storage.WriteFile(ctx, stagingDir, entity.DescriptionFile, []byte(description)); err != nil {
		r.discardStaging(ctx, stageDir, staging)
		return fmt.Errorf("failed to write description: %w", err)
	}
	if r.createEmptyComments {
		if err := storage.WriteFile(ctx, stagingDir, entity.CommentsFile, nil); err != nil {
			r.discardStaging(ctx, stageDir, staging)
			return fmt.Errorf("failed to create comments file: %w", err)
		}
	}

	if err := stageDir.Rename(ctx, staging, folder); err != nil {
		r.discardStaging(ctx, stageDir, staging)
		return fmt.Errorf("failed to commit card %s: %w", folder, err)
	}
	return nil
}

func uniqueFolderName(ctx context.Context, stageDir storage.Dir, base string) (string, error) {
	entries, err := stageDir.Entries(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list stage %s: %w", stageDir.Name(), err)
	}
	taken := make(map[string]bool, len(entries))
	for _, entry := range entries {
		taken[entry.Name] = true
	}

	name := base
	for i := 2; taken[name]; i++ {
		name = fmt.Sprintf("%s (%d)", base, i)
	}
	return name, nil
}

// MoveCard moves a card folder into targetStage. The card is copied into a
// staging folder, verified, renamed into place and only then deleted from
// the source, so an interruption never loses data. Retrying a move whose
// source is already gone succeeds when the destination holds the card.
func (r *BoardRepositoryImpl) MoveCard(ctx context.Context, ref entity.CardRef, targetStage string) (entity.CardRef, error) {
	if err := entity.ValidateStageName(targetStage); err != nil {
		return ref, err
	}
	targetStage = strings.TrimSpace(targetStage)
	if targetStage == ref.Stage {
		return ref, nil
	}
	if err := r.requireAccess(ctx); err != nil {
		return ref, err
	}

	targetStage, err := r.resolveStage(ctx, targetStage)
	if err != nil {
		return ref, err
	}
	if targetStage == ref.Stage {
		return ref, nil
	}
	moved := entity.CardRef{Stage: targetStage, Folder: ref.Folder}

	srcStage, srcCard, err := r.openCard(ctx, ref)
	if err != nil {
		if !storage.IsNotFound(err) {
			return ref, err
		}
		if r.cardExists(ctx, moved) {
			r.logger.WithFields(logrus.Fields{"stage": targetStage, "card": ref.Folder}).
				Info("Card already in destination, treating move as done")
			return moved, nil
		}
		return ref, fmt.Errorf("%w: %s/%s", entity.ErrSourceMissing, ref.Stage, ref.Folder)
	}

	dstStage, err := r.root.Dir(ctx, targetStage, true)
	if err != nil {
		return ref, fmt.Errorf("failed to open destination stage %s: %w", targetStage, err)
	}
	// Both names lead to one folder: replacing the destination would
	// delete the source
	if storage.SameDir(srcStage, dstStage) {
		r.logger.WithFields(logrus.Fields{"stage": ref.Stage, "card": ref.Folder, "target": targetStage}).
			Info("Target stage is the source folder, nothing to move")
		return ref, nil
	}

	if err := r.moveFolder(ctx, srcStage, dstStage, srcCard, ref.Folder); err != nil {
		return ref, err
	}
	return moved, nil
}

func (r *BoardRepositoryImpl) moveFolder(ctx context.Context, srcStage, dstStage, srcCard storage.Dir, folder string) error {
	staging := stagingName(folder)
	if err := dstStage.Remove(ctx, staging, true); err != nil {
		return fmt.Errorf("failed to clear staging folder: %w", err)
	}

	stagingDir, err := dstStage.Dir(ctx, staging, true)
	if err != nil {
		return fmt.Errorf("failed to create staging folder: %w", err)
	}
	if err := storage.CopyTree(ctx, srcCard, stagingDir); err != nil {
		r.discardStaging(ctx, dstStage, staging)
		return fmt.Errorf("failed to copy card %s: %w", folder, err)
	}
	if err := storage.VerifyTree(ctx, srcCard, stagingDir); err != nil {
		r.discardStaging(ctx, dstStage, staging)
		return fmt.Errorf("copy of card %s is incomplete: %w", folder, err)
	}

	if err := dstStage.Remove(ctx, folder, true); err != nil {
		return fmt.Errorf("failed to replace existing card %s: %w", folder, err)
	}
	if err := dstStage.Rename(ctx, staging, folder); err != nil {
		return fmt.Errorf("failed to commit card %s: %w", folder, err)
	}

	if err := srcStage.Remove(ctx, folder, true); err != nil {
		return fmt.Errorf("card %s was copied but the source could not be removed: %w", folder, err)
	}
	return nil
}

func (r *BoardRepositoryImpl) discardStaging(ctx context.Context, stage storage.Dir, staging string) {
	if err := stage.Remove(ctx, staging, true); err != nil {
		r.logger.WithError(err).WithField("file", staging).Warn("Failed to remove staging folder")
	}
}

// SaveDescription overwrites info.txt verbatim
func (r *BoardRepositoryImpl) SaveDescription(ctx context.Context, ref entity.CardRef, text string) error {
	cardDir, err := r.openCardForWrite(ctx, ref)
	if err != nil {
		return err
	}
	if err := storage.WriteFile(ctx, cardDir, entity.DescriptionFile, []byte(text)); err != nil {
		return fmt.Errorf("failed to save description: %w", err)
	}
	return nil
}

// AddComment appends a single line comment to comments.txt
func (r *BoardRepositoryImpl) AddComment(ctx context.Context, ref entity.CardRef, text string) error {
	comment, err := entity.ValidateComment(text)
	if err != nil {
		return err
	}
	cardDir, err := r.openCardForWrite(ctx, ref)
	if err != nil {
		return err
	}

	existing, err := readOptional(ctx, cardDir, entity.CommentsFile)
	if err != nil {
		return fmt.Errorf("failed to read comments: %w", err)
	}
	if err := storage.WriteFile(ctx, cardDir, entity.CommentsFile, serialization.AppendComment(existing, comment)); err != nil {
		return fmt.Errorf("failed to save comment: %w", err)
	}
	return nil
}

// UpdateComment replaces the comment at index, leaving the others untouched
func (r *BoardRepositoryImpl) UpdateComment(ctx context.Context, ref entity.CardRef, index int, text string) error {
	comment, err := entity.ValidateComment(text)
	if err != nil {
		return err
	}
	return r.rewriteComments(ctx, ref, func(comments []string) ([]string, error) {
		if index < 0 || index >= len(comments) {
			return nil, fmt.Errorf("%w: %d", entity.ErrCommentIndex, index)
		}
		comments[index] = comment
		return comments, nil
	})
}

// DeleteComment removes the comment at index
func (r *BoardRepositoryImpl) DeleteComment(ctx context.Context, ref entity.CardRef, index int) error {
	return r.rewriteComments(ctx, ref, func(comments []string) ([]string, error) {
		if index < 0 || index >= len(comments) {
			return nil, fmt.Errorf("%w: %d", entity.ErrCommentIndex, index)
		}
		return slices.Delete(comments, index, index+1), nil
	})
}

func (r *BoardRepositoryImpl) rewriteComments(ctx context.Context, ref entity.CardRef, edit func([]string) ([]string, error)) error {
	cardDir, err := r.openCardForWrite(ctx, ref)
	if err != nil {
		return err
	}

	existing, err := readOptional(ctx, cardDir, entity.CommentsFile)
	if err != nil {
		return fmt.Errorf("failed to read comments: %w", err)
	}
	comments, err := edit(serialization.DecodeComments(existing))
	if err != nil {
		return err
	}
	if err := storage.WriteFile(ctx, cardDir, entity.CommentsFile, serialization.EncodeComments(comments)); err != nil {
		return fmt.Errorf("failed to save comments: %w", err)
	}
	return nil
}

// SaveCardLegends keeps the names present in the registry, in registry
// order and without duplicates, and stores them. Nothing is written when
// the card already holds exactly that list.
func (r *BoardRepositoryImpl) SaveCardLegends(ctx context.Context, ref entity.CardRef, names []string) ([]string, error) {
	cardDir, err := r.openCardForWrite(ctx, ref)
	if err != nil {
		return nil, err
	}

	registry, err := r.LoadLegends(ctx)
	if err != nil {
		return nil, err
	}
	trimmed := make([]string, 0, len(names))
	for _, name := range names {
		trimmed = append(trimmed, strings.TrimSpace(name))
	}
	known, _ := entity.SplitLegendNames(trimmed, registry)

	state, err := readCardState(ctx, cardDir)
	if err != nil {
		return nil, err
	}
	if slices.Equal(state.Legends, known) {
		return known, nil
	}
	state.Legends = known
	if err := writeCardState(ctx, cardDir, state); err != nil {
		return nil, err
	}
	return known, nil
}

// SaveCardTasks replaces the checklist of a card
func (r *BoardRepositoryImpl) SaveCardTasks(ctx context.Context, ref entity.CardRef, tasks []entity.Task) error {
	if err := entity.ValidateTasks(tasks); err != nil {
		return err
	}
	cardDir, err := r.openCardForWrite(ctx, ref)
	if err != nil {
		return err
	}

	state, err := readCardState(ctx, cardDir)
	if err != nil {
		return err
	}
	state.Tasks = mapper.TasksToStorage(tasks)
	return writeCardState(ctx, cardDir, state)
}

// AddAttachment writes data as a file of the card, replacing a file with
// the same name
func (r *BoardRepositoryImpl) AddAttachment(ctx context.Context, ref entity.CardRef, name string, data []byte) error {
	if err := entity.ValidateAttachmentName(name); err != nil {
		return err
	}
	cardDir, err := r.openCardForWrite(ctx, ref)
	if err != nil {
		return err
	}
	if err := storage.WriteFile(ctx, cardDir, name, data); err != nil {
		return fmt.Errorf("failed to save attachment %s: %w", name, err)
	}
	return nil
}

// RemoveAttachment deletes an attachment. A missing file is not an error.
func (r *BoardRepositoryImpl) RemoveAttachment(ctx context.Context, ref entity.CardRef, name string) error {
	if err := entity.ValidateAttachmentName(name); err != nil {
		return err
	}
	cardDir, err := r.openCardForWrite(ctx, ref)
	if err != nil {
		return err
	}

	exists, err := storage.Exists(ctx, cardDir, name, storage.KindFile)
	if err != nil {
		return fmt.Errorf("failed to open attachment %s: %w", name, err)
	}
	if !exists {
		return nil
	}
	if err := cardDir.Remove(ctx, name, false); err != nil {
		return fmt.Errorf("failed to remove attachment %s: %w", name, err)
	}
	return nil
}

// ArchiveCard records where the card lives and moves it into the archived
// stage
func (r *BoardRepositoryImpl) ArchiveCard(ctx context.Context, ref entity.CardRef) (entity.CardRef, error) {
	if strings.EqualFold(ref.Stage, r.archivedStage) {
		return ref, nil
	}
	cardDir, err := r.openCardForWrite(ctx, ref)
	if err != nil {
		return ref, err
	}

	previous, err := readCardState(ctx, cardDir)
	if err != nil {
		return ref, err
	}
	state := previous
	now := r.now()
	state.Archived = true
	state.ArchivedAt = &now
	state.ArchivedFromListID = ref.Stage
	state.ArchivedFromListName = ref.Stage
	if err := writeCardState(ctx, cardDir, state); err != nil {
		return ref, err
	}

	target, err := r.resolveArchivedStage(ctx)
	if err != nil {
		r.revertCardState(ctx, cardDir, previous)
		return ref, err
	}
	moved, err := r.MoveCard(ctx, ref, target)
	if err != nil {
		r.revertCardState(ctx, cardDir, previous)
		return ref, fmt.Errorf("failed to archive card: %w", err)
	}
	return moved, nil
}

// RestoreCard moves an archived card back to the stage it was archived
// from, or to fallbackStage when that is unknown, and clears the archive
// bookkeeping
func (r *BoardRepositoryImpl) RestoreCard(ctx context.Context, ref entity.CardRef, fallbackStage string) (entity.CardRef, error) {
	cardDir, err := r.openCardForWrite(ctx, ref)
	if err != nil {
		return ref, err
	}

	previous, err := readCardState(ctx, cardDir)
	if err != nil {
		return ref, err
	}
	if !previous.Archived && !strings.EqualFold(ref.Stage, r.archivedStage) {
		return ref, fmt.Errorf("%w: %s/%s", entity.ErrCardNotArchived, ref.Stage, ref.Folder)
	}

	target := previous.ArchivedFromListID
	if target == "" || strings.EqualFold(target, r.archivedStage) {
		target = fallbackStage
	}
	if err := entity.ValidateStageName(target); err != nil {
		return ref, fmt.Errorf("no stage to restore %s to: %w", ref.Folder, err)
	}

	state := previous
	state.Archived = false
	state.ArchivedAt = nil
	state.ArchivedFromListID = ""
	state.ArchivedFromListName = ""
	if err := writeCardState(ctx, cardDir, state); err != nil {
		return ref, err
	}

	moved, err := r.MoveCard(ctx, ref, target)
	if err != nil {
		r.revertCardState(ctx, cardDir, previous)
		return ref, fmt.Errorf("failed to restore card: %w", err)
	}
	return moved, nil
}

func (r *BoardRepositoryImpl) revertCardState(ctx context.Context, cardDir storage.Dir, state serialization.CardState) {
	if err := writeCardState(ctx, cardDir, state); err != nil {
		r.logger.WithError(err).WithField("card", cardDir.Name()).Warn("Failed to revert card state")
	}
}

// resolveArchivedStage returns an existing folder matching the archived
// stage name in any case, or the configured name
func (r *BoardRepositoryImpl) resolveArchivedStage(ctx context.Context) (string, error) {
	return r.resolveStage(ctx, r.archivedStage)
}

// resolveStage maps name to an existing stage folder: the exact name when
// present, otherwise the first folder equal to it ignoring case. Unknown
// names are returned as given.
func (r *BoardRepositoryImpl) resolveStage(ctx context.Context, name string) (string, error) {
	entries, err := r.root.Entries(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list stages: %w", err)
	}
	folded := ""
	for _, entry := range entries {
		if entry.Kind != storage.KindDir || isInternal(entry.Name) {
			continue
		}
		if entry.Name == name {
			return name, nil
		}
		if folded == "" && strings.EqualFold(entry.Name, name) {
			folded = entry.Name
		}
	}
	if folded != "" {
		return folded, nil
	}
	return name, nil
}

// LoadLegends reads legendas.txt. A missing file is an empty registry.
func (r *BoardRepositoryImpl) LoadLegends(ctx context.Context) ([]entity.Legend, error) {
	data, err := readOptional(ctx, r.root, entity.LegendsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read legends: %w", err)
	}
	return serialization.DecodeLegends(data), nil
}

// SaveLegends validates and replaces the legend registry. Invalid input is
// rejected before anything is written.
func (r *BoardRepositoryImpl) SaveLegends(ctx context.Context, legends []entity.Legend) error {
	if err := entity.ValidateLegends(legends); err != nil {
		return err
	}
	if err := r.requireAccess(ctx); err != nil {
		return err
	}
	data := serialization.EncodeLegends(entity.NormalizeLegends(legends))
	if err := storage.WriteFile(ctx, r.root, entity.LegendsFile, data); err != nil {
		return fmt.Errorf("failed to save legends: %w", err)
	}
	return nil
}

func (r *BoardRepositoryImpl) requireAccess(ctx context.Context) error {
	granted, err := r.root.RequestAccess(ctx, storage.ModeReadWrite)
	if err != nil {
		return fmt.Errorf("failed to check access to %s: %w", r.root.Name(), err)
	}
	if !granted {
		return fmt.Errorf("%w: read-write access to %s was not granted", entity.ErrPermissionDenied, r.root.Name())
	}
	return nil
}

func (r *BoardRepositoryImpl) openCard(ctx context.Context, ref entity.CardRef) (storage.Dir, storage.Dir, error) {
	if ref.Stage == "" || ref.Folder == "" {
		return nil, nil, fmt.Errorf("%w: %s/%s", entity.ErrCardNotFound, ref.Stage, ref.Folder)
	}
	stageDir, err := r.root.Dir(ctx, ref.Stage, false)
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, nil, fmt.Errorf("%w: %s: %w", entity.ErrStageNotFound, ref.Stage, err)
		}
		return nil, nil, err
	}
	cardDir, err := stageDir.Dir(ctx, ref.Folder, false)
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, nil, fmt.Errorf("%w: %s/%s: %w", entity.ErrCardNotFound, ref.Stage, ref.Folder, err)
		}
		return nil, nil, err
	}
	return stageDir, cardDir, nil
}

func (r *BoardRepositoryImpl) openCardForWrite(ctx context.Context, ref entity.CardRef) (storage.Dir, error) {
	if err := r.requireAccess(ctx); err != nil {
		return nil, err
	}
	_, cardDir, err := r.openCard(ctx, ref)
	return cardDir, err
}

func (r *BoardRepositoryImpl) cardExists(ctx context.Context, ref entity.CardRef) bool {
	_, _, err := r.openCard(ctx, ref)
	return err == nil
}

func readOptional(ctx context.Context, dir storage.Dir, name string) ([]byte, error) {
	data, _, err := storage.ReadFile(ctx, dir, name)
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

func readCardState(ctx context.Context, cardDir storage.Dir) (serialization.CardState, error) {
	data, err := readOptional(ctx, cardDir, entity.CardStateFile)
	if err != nil {
		return serialization.CardState{}, fmt.Errorf("failed to read card state: %w", err)
	}
	state, err := serialization.DecodeCardState(data)
	if err != nil {
		return serialization.CardState{}, fmt.Errorf("%w: %w", entity.ErrIOFailure, err)
	}
	return state, nil
}

func writeCardState(ctx context.Context, cardDir storage.Dir, state serialization.CardState) error {
	if state.IsZero() {
		if err := cardDir.Remove(ctx, entity.CardStateFile, false); err != nil {
			return fmt.Errorf("failed to clear card state: %w", err)
		}
		return nil
	}
	data, err := serialization.EncodeCardState(state)
	if err != nil {
		return err
	}
	if err := storage.WriteFile(ctx, cardDir, entity.CardStateFile, data); err != nil {
		return fmt.Errorf("failed to save card state: %w", err)
	}
	return nil
}

var _ repository.BoardRepository = (*BoardRepositoryImpl)(nil)
