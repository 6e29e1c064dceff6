package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/cristianoliveira/chat-sidebar/internal/model"
)

// AddChat stores a chat in sessionID and returns its ID.
func (s *SQLiteStorage) AddChat(ctx context.Context, sessionID, title string, archived bool) (int64, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return 0, fmt.Errorf("sqlite storage: add chat: %w", ErrEmptyName)
	}
	if err := s.sessionExists(ctx, sessionID); err != nil {
		return 0, fmt.Errorf("sqlite storage: add chat to %s: %w", sessionID, err)
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO chats (session_id, title, archived, updated_at) VALUES (?, ?, ?, ?)`,
		sessionID, title, boolToInt(archived), utcNow())
	if err != nil {
		return 0, fmt.Errorf("sqlite storage: add chat: %w", err)
	}
	return res.LastInsertId()
}

// SetArchived moves a chat in or out of the archive.
func (s *SQLiteStorage) SetArchived(ctx context.Context, chatID int64, archived bool) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE chats SET archived = ?, updated_at = ? WHERE id = ?`,
		boolToInt(archived), utcNow(), chatID)
	if err != nil {
		return fmt.Errorf("sqlite storage: set archived %d: %w", chatID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite storage: set archived %d: %w", chatID, err)
	}
	if n == 0 {
		return fmt.Errorf("sqlite storage: set archived %d: %w", chatID, ErrChatNotFound)
	}
	return nil
}

// SetUnread records the unread counter of a chat.
func (s *SQLiteStorage) SetUnread(ctx context.Context, chatID int64, unread int) error {
	if unread < 0 {
		unread = 0
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE chats SET unread = ?, updated_at = ? WHERE id = ?`, unread, utcNow(), chatID)
	if err != nil {
		return fmt.Errorf("sqlite storage: set unread %d: %w", chatID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite storage: set unread %d: %w", chatID, err)
	}
	if n == 0 {
		return fmt.Errorf("sqlite storage: set unread %d: %w", chatID, ErrChatNotFound)
	}
	return nil
}

// AddFolder appends a folder to sessionID and returns its ID.
func (s *SQLiteStorage) AddFolder(ctx context.Context, sessionID, title string) (int64, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return 0, fmt.Errorf("sqlite storage: add folder: %w", ErrEmptyName)
	}
	if err := s.sessionExists(ctx, sessionID); err != nil {
		return 0, fmt.Errorf("sqlite storage: add folder to %s: %w", sessionID, err)
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO folders (session_id, title, position)
		 VALUES (?, ?, (SELECT COALESCE(MAX(position), -1) + 1 FROM folders WHERE session_id = ?))`,
		sessionID, title, sessionID)
	if err != nil {
		return 0, fmt.Errorf("sqlite storage: add folder: %w", err)
	}
	return res.LastInsertId()
}

// AddChatToFolder files a chat under a folder of the same session.
func (s *SQLiteStorage) AddChatToFolder(ctx context.Context, folderID, chatID int64) error {
	var folderSession, chatSession string
	err := s.db.QueryRowContext(ctx, `SELECT session_id FROM folders WHERE id = ?`, folderID).Scan(&folderSession)
	if err == sql.ErrNoRows {
		return fmt.Errorf("sqlite storage: folder %d: %w", folderID, ErrFolderNotFound)
	} else if err != nil {
		return fmt.Errorf("sqlite storage: folder %d: %w", folderID, err)
	}
	err = s.db.QueryRowContext(ctx, `SELECT session_id FROM chats WHERE id = ?`, chatID).Scan(&chatSession)
	if err == sql.ErrNoRows {
		return fmt.Errorf("sqlite storage: chat %d: %w", chatID, ErrChatNotFound)
	} else if err != nil {
		return fmt.Errorf("sqlite storage: chat %d: %w", chatID, err)
	}
	if folderSession != chatSession {
		return fmt.Errorf("sqlite storage: chat %d and folder %d belong to different sessions", chatID, folderID)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO folder_chats (folder_id, chat_id) VALUES (?, ?)`, folderID, chatID)
	if err != nil {
		return fmt.Errorf("sqlite storage: add chat %d to folder %d: %w", chatID, folderID, err)
	}
	return nil
}

// LoadSession builds the in-memory session with its main list, archive
// list and folders populated.
func (s *SQLiteStorage) LoadSession(ctx context.Context, sessionID string) (*model.Session, error) {
	var name string
	err := s.db.QueryRowContext(ctx, `SELECT name FROM sessions WHERE id = ?`, sessionID).Scan(&name)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("sqlite storage: load session %s: %w", sessionID, ErrSessionNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite storage: load session %s: %w", sessionID, err)
	}

	session := model.NewSession(sessionID, name)
	chats, err := s.loadChats(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*model.Chat, len(chats))
	for _, c := range chats {
		byID[c.ID] = c
		session.AddChat(c)
	}

	if err := s.loadFolders(ctx, session, byID); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *SQLiteStorage) loadChats(ctx context.Context, sessionID string) ([]*model.Chat, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, unread, archived FROM chats WHERE session_id = ? ORDER BY id`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("sqlite storage: load chats: %w", err)
	}
	defer rows.Close()

	var out []*model.Chat
	for rows.Next() {
		var (
			c        model.Chat
			archived int
		)
		if err := rows.Scan(&c.ID, &c.Title, &c.Unread, &archived); err != nil {
			return nil, fmt.Errorf("sqlite storage: scan chat: %w", err)
		}
		c.Archived = archived != 0
		out = append(out, &c)
	}
	return out, rows.Err()
}

func (s *SQLiteStorage) loadFolders(ctx context.Context, session *model.Session, chats map[int64]*model.Chat) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT f.id, f.title, fc.chat_id
		 FROM folders f LEFT JOIN folder_chats fc ON fc.folder_id = f.id
		 WHERE f.session_id = ?
		 ORDER BY f.position, fc.chat_id`, session.ID)
	if err != nil {
		return fmt.Errorf("sqlite storage: load folders: %w", err)
	}
	defer rows.Close()

	var current *model.ChatFolder
	for rows.Next() {
		var (
			id     int64
			title  string
			chatID sql.NullInt64
		)
		if err := rows.Scan(&id, &title, &chatID); err != nil {
			return fmt.Errorf("sqlite storage: scan folder: %w", err)
		}
		if current == nil || current.ID != id {
			current = model.NewChatFolder(id, title)
			session.FolderList().Append(current)
		}
		if !chatID.Valid {
			continue
		}
		if c, ok := chats[chatID.Int64]; ok {
			session.AddToFolder(current, c)
		}
	}
	return rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
