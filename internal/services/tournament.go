package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/Hunter28-lucky/Esports-india-sub001/internal/logger"
	"github.com/Hunter28-lucky/Esports-india-sub001/internal/models"
	"github.com/Hunter28-lucky/Esports-india-sub001/internal/repositories"
)

// Fixed ceilings for the listing reads. Upstreams that never resolve are
// cut off and reported as a timeout instead of hanging the request.
const (
	listTimeout          = 5 * time.Second
	myTournamentsTimeout = 6 * time.Second
)

var (
	// ErrUpstreamTimeout is returned when a listing read exceeds its ceiling.
	ErrUpstreamTimeout = errors.New("upstream timeout")
	// ErrInsufficientBalance is returned when the wallet cannot cover the entry fee.
	ErrInsufficientBalance = errors.New("insufficient wallet balance")
	// ErrTournamentFull mirrors the repository sentinel for handlers.
	ErrTournamentFull = repositories.ErrTournamentFull
	// ErrAlreadyJoined mirrors the repository sentinel for handlers.
	ErrAlreadyJoined = repositories.ErrAlreadyJoined
)

// TournamentReader defines tournament read operations.
type TournamentReader interface {
	List(ctx context.Context, includeCompleted bool) ([]models.TournamentDB, error)
	GetByID(ctx context.Context, tournamentID uuid.UUID) (*models.TournamentDB, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]models.TournamentDB, error)
}

// TournamentCache defines the listing cache.
type TournamentCache interface {
	GetListing(ctx context.Context) ([]models.TournamentDB, error)
	SetListing(ctx context.Context, tournaments []models.TournamentDB) error
}

// ParticipantReader defines participant read operations.
type ParticipantReader interface {
	ListByTournamentID(ctx context.Context, tournamentID uuid.UUID) ([]models.ParticipantView, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.ParticipantDB, error)
}

// ParticipantWriter defines the join write.
type ParticipantWriter interface {
	Save(ctx context.Context, tournamentID, userID uuid.UUID) error
}

// WalletDebitor debits entry fees from user wallets.
type WalletDebitor interface {
	DebitWallet(ctx context.Context, userID uuid.UUID, amount int64) error
}

// TransactionWriter records wallet transactions.
type TransactionWriter interface {
	Save(ctx context.Context, userID uuid.UUID, txnType string, amount int64, reference *string) error
}

// FeedPublisher signals participant changes to waiting-room subscribers.
type FeedPublisher interface {
	Publish(ctx context.Context, tournamentID uuid.UUID) error
}

// MyTournament is a join record merged with its tournament.
type MyTournament struct {
	Tournament models.TournamentDB `json:"tournament"`
	JoinedAt   time.Time           `json:"joined_at"`
	Placement  *int                `json:"placement,omitempty"`
	Kills      *int                `json:"kills,omitempty"`
	PrizeWon   *int64              `json:"prize_won,omitempty"`
}

// TournamentService owns the tournament listing, membership and join flows.
type TournamentService struct {
	reader           TournamentReader
	cache            TournamentCache
	participantRead  ParticipantReader
	participantWrite ParticipantWriter
	wallet           WalletDebitor
	transactions     TransactionWriter
	feed             FeedPublisher
	kafkaWriter      KafkaWriter
}

// NewTournamentService creates a new TournamentService.
func NewTournamentService(
	reader TournamentReader,
	cache TournamentCache,
	participantRead ParticipantReader,
	participantWrite ParticipantWriter,
	wallet WalletDebitor,
	transactions TransactionWriter,
	feed FeedPublisher,
	kafkaWriter KafkaWriter,
) *TournamentService {
	return &TournamentService{
		reader:           reader,
		cache:            cache,
		participantRead:  participantRead,
		participantWrite: participantWrite,
		wallet:           wallet,
		transactions:     transactions,
		feed:             feed,
		kafkaWriter:      kafkaWriter,
	}
}

// List returns the public listing of upcoming and live tournaments,
// served from cache when possible, bounded by listTimeout.
func (s *TournamentService) List(ctx context.Context) ([]models.TournamentDB, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	if s.cache != nil {
		if tournaments, err := s.cache.GetListing(ctx); err == nil {
			return tournaments, nil
		}
	}

	tournaments, err := s.reader.List(ctx, false)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			logger.Log.Errorw("tournament listing timed out", "timeout", listTimeout)
			return nil, ErrUpstreamTimeout
		}
		logger.Log.Errorw("failed to list tournaments", "error", err)
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetListing(ctx, tournaments); err != nil {
			logger.Log.Errorw("failed to cache tournament listing", "error", err)
		}
	}

	return tournaments, nil
}

// ListAll returns tournaments of every status for the admin listing,
// bypassing the cache, bounded by listTimeout.
func (s *TournamentService) ListAll(ctx context.Context) ([]models.TournamentDB, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	tournaments, err := s.reader.List(ctx, true)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			logger.Log.Errorw("admin tournament listing timed out", "timeout", listTimeout)
			return nil, ErrUpstreamTimeout
		}
		logger.Log.Errorw("failed to list tournaments for admin", "error", err)
		return nil, err
	}

	return tournaments, nil
}

// ListForUser returns the tournaments a user has joined. Two sequential
// reads, participations then tournaments by id set, merged in memory.
// There is no transactional guarantee between the two reads.
func (s *TournamentService) ListForUser(ctx context.Context, userID uuid.UUID) ([]MyTournament, error) {
	ctx, cancel := context.WithTimeout(ctx, myTournamentsTimeout)
	defer cancel()

	participations, err := s.participantRead.ListByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, ErrUpstreamTimeout
		}
		logger.Log.Errorw("failed to list participations", "user_id", userID, "error", err)
		return nil, err
	}
	if len(participations) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(participations))
	for _, p := range participations {
		ids = append(ids, p.TournamentID)
	}

	tournaments, err := s.reader.ListByIDs(ctx, ids)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, ErrUpstreamTimeout
		}
		logger.Log.Errorw("failed to list tournaments by ids", "user_id", userID, "error", err)
		return nil, err
	}

	byID := make(map[uuid.UUID]models.TournamentDB, len(tournaments))
	for _, t := range tournaments {
		byID[t.TournamentID] = t
	}

	result := make([]MyTournament, 0, len(participations))
	for _, p := range participations {
		tournament, ok := byID[p.TournamentID]
		if !ok {
			continue
		}
		result = append(result, MyTournament{
			Tournament: tournament,
			JoinedAt:   p.JoinedAt,
			Placement:  p.Placement,
			Kills:      p.Kills,
			PrizeWon:   p.PrizeWon,
		})
	}

	return result, nil
}

// Participants returns the participant list of a tournament.
func (s *TournamentService) Participants(ctx context.Context, tournamentID uuid.UUID) ([]models.ParticipantView, error) {
	return s.participantRead.ListByTournamentID(ctx, tournamentID)
}

// Join inserts the join record, debits the entry fee, records the
// transaction and notifies waiting-room subscribers. The seat insert runs
// first so a full or duplicate join is rejected before any money moves.
// The caller is expected to run this under a request transaction so a
// failed later step rolls back the earlier ones.
func (s *TournamentService) Join(ctx context.Context, tournamentID, userID uuid.UUID) error {
	tournament, err := s.reader.GetByID(ctx, tournamentID)
	if err != nil {
		logger.Log.Errorw("failed to load tournament for join", "tournament_id", tournamentID, "error", err)
		return err
	}

	if err := s.participantWrite.Save(ctx, tournamentID, userID); err != nil {
		logger.Log.Errorw("failed to save join record", "tournament_id", tournamentID, "user_id", userID, "error", err)
		return err
	}

	if tournament.EntryFee > 0 {
		if err := s.wallet.DebitWallet(ctx, userID, tournament.EntryFee); err != nil {
			logger.Log.Errorw("failed to debit entry fee", "user_id", userID, "entry_fee", tournament.EntryFee, "error", err)
			if errors.Is(err, sql.ErrNoRows) {
				return ErrInsufficientBalance
			}
			return err
		}

		ref := tournamentID.String()
		if err := s.transactions.Save(ctx, userID, models.TxnEntryFee, tournament.EntryFee, &ref); err != nil {
			logger.Log.Errorw("failed to record entry fee transaction", "user_id", userID, "error", err)
			return err
		}
	}

	if s.feed != nil {
		if err := s.feed.Publish(ctx, tournamentID); err != nil {
			logger.Log.Errorw("failed to publish participant change", "tournament_id", tournamentID, "error", err)
		}
	}

	s.publishJoinEvent(ctx, models.JoinEvent{
		EventID:      uuid.NewString(),
		Timestamp:    time.Now().Unix(),
		TournamentID: tournamentID.String(),
		UserID:       userID.String(),
		EntryFee:     tournament.EntryFee,
	})

	return nil
}

// publishJoinEvent publishes a join event to Kafka, fire-and-forget.
func (s *TournamentService) publishJoinEvent(ctx context.Context, event models.JoinEvent) {
	if s.kafkaWriter == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "tournament_id", event.TournamentID)
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal join event for Kafka", "tournament_id", event.TournamentID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.TournamentID),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish join event to Kafka", "tournament_id", event.TournamentID, "error", err)
	} else {
		logger.Log.Infow("Join event published to Kafka", "tournament_id", event.TournamentID, "user_id", event.UserID)
	}
}
