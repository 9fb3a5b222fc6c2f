package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chat-hub/internal/models"
	"chat-hub/pkg/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresDB struct {
	pool *pgxpool.Pool
}

func NewPostgresDB(ctx context.Context, databaseURL string) (*PostgresDB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Connected to database successfully")
	return &PostgresDB{pool: pool}, nil
}

func (db *PostgresDB) Close() error {
	db.pool.Close()
	return nil
}

// Migrate creates the tables the hub reads and writes when they are missing.
func (db *PostgresDB) Migrate(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// Presence Repository Implementation

// SetPresence ignores writes older than the stored one, since updates for the
// same user may land out of order.
func (db *PostgresDB) SetPresence(ctx context.Context, userID string, online bool, at time.Time) error {
	query := `
		INSERT INTO user_presence (user_id, is_online, last_seen)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id)
		DO UPDATE SET is_online = EXCLUDED.is_online, last_seen = EXCLUDED.last_seen
		WHERE user_presence.last_seen <= EXCLUDED.last_seen`

	_, err := db.pool.Exec(ctx, query, userID, online, at)
	return err
}

// Conversation Repository Implementation
func (db *PostgresDB) IsParticipant(ctx context.Context, conversationID, userID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM conversation_participants WHERE conversation_id = $1 AND user_id = $2)`

	var exists bool
	err := db.pool.QueryRow(ctx, query, conversationID, userID).Scan(&exists)
	return exists, err
}

func (db *PostgresDB) ConversationParticipants(ctx context.Context, conversationID string) ([]string, error) {
	query := `
		SELECT user_id
		FROM conversation_participants
		WHERE conversation_id = $1
		ORDER BY user_id`

	rows, err := db.pool.Query(ctx, query, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var participants []string
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, err
		}
		participants = append(participants, userID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(participants) == 0 {
		return nil, ErrNotFound
	}

	return participants, nil
}

func (db *PostgresDB) GetMessage(ctx context.Context, messageID string) (*models.Message, error) {
	query := `SELECT id, conversation_id, sender_id, content, type, created_at FROM messages WHERE id = $1`

	msg := &models.Message{}
	err := db.pool.QueryRow(ctx, query, messageID).Scan(
		&msg.ID, &msg.ConversationID, &msg.SenderID, &msg.Content, &msg.Type, &msg.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return msg, nil
}

// Reaction Repository Implementation
func (db *PostgresDB) FindReaction(ctx context.Context, messageID, userID, emoji string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM message_reactions WHERE message_id = $1 AND user_id = $2 AND emoji = $3)`

	var exists bool
	err := db.pool.QueryRow(ctx, query, messageID, userID, emoji).Scan(&exists)
	return exists, err
}

func (db *PostgresDB) InsertReaction(ctx context.Context, messageID string, reaction models.Reaction) error {
	query := `
		INSERT INTO message_reactions (message_id, user_id, emoji, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (message_id, user_id, emoji) DO NOTHING`

	_, err := db.pool.Exec(ctx, query, messageID, reaction.UserID, reaction.Emoji, reaction.CreatedAt)
	return err
}

func (db *PostgresDB) DeleteReaction(ctx context.Context, messageID, userID, emoji string) error {
	query := `DELETE FROM message_reactions WHERE message_id = $1 AND user_id = $2 AND emoji = $3`
	_, err := db.pool.Exec(ctx, query, messageID, userID, emoji)
	return err
}

func (db *PostgresDB) ListReactions(ctx context.Context, messageID string) ([]models.Reaction, error) {
	query := `
		SELECT user_id, emoji, created_at
		FROM message_reactions
		WHERE message_id = $1
		ORDER BY created_at, user_id, emoji`

	rows, err := db.pool.Query(ctx, query, messageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reactions := []models.Reaction{}
	for rows.Next() {
		var r models.Reaction
		if err := rows.Scan(&r.UserID, &r.Emoji, &r.CreatedAt); err != nil {
			return nil, err
		}
		reactions = append(reactions, r)
	}

	return reactions, rows.Err()
}
