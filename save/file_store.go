package save

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/argon2"
)

var (
	ErrCorrupt = errors.New("save: corrupt or unreadable save file")
)

var magic = []byte("LUMN\x01")

const (
	saltSize = 16
	keySize  = 32

	argonTime    = 1
	argonMemory  = 19 * 1024
	argonThreads = 2
)

// FileStore keeps one save slot as an encrypted JSON blob. The key is
// derived from a passphrase with argon2id and a per-file salt.
type FileStore struct {
	path       string
	passphrase []byte
	now        func() time.Time
	logger     *zap.Logger
}

func NewFileStore(dir, slot, passphrase string, logger *zap.Logger) *FileStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileStore{
		path:       filepath.Join(dir, slot+".sav"),
		passphrase: []byte(passphrase),
		now:        time.Now,
		logger:     logger,
	}
}

func (s *FileStore) Path() string {
	return s.path
}

// Save stamps the state with an id (if missing) and the current time and
// replaces the slot atomically.
func (s *FileStore) Save(state State) error {
	if state.ID == uuid.Nil {
		state.ID = uuid.New()
	}
	state.SavedAt = s.now().UTC()

	plain, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("save: encode: %w", err)
	}
	blob, err := s.seal(plain)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("save: create dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, blob, 0o600); err != nil {
		return fmt.Errorf("save: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("save: replace %s: %w", s.path, err)
	}
	s.logger.Info("game saved", zap.String("path", s.path), zap.Stringer("id", state.ID), zap.Int("level", state.LevelID))
	return nil
}

func (s *FileStore) Load() (State, bool, error) {
	blob, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return State{}, false, nil
	}
	if err != nil {
		return State{}, false, fmt.Errorf("save: read %s: %w", s.path, err)
	}
	plain, err := s.open(blob)
	if err != nil {
		return State{}, false, err
	}
	var state State
	if err := json.Unmarshal(plain, &state); err != nil {
		return State{}, false, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return state, true, nil
}

func (s *FileStore) seal(plain []byte) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("save: salt: %w", err)
	}
	gcm, err := s.aead(salt)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("save: nonce: %w", err)
	}

	out := make([]byte, 0, len(magic)+saltSize+len(nonce)+len(plain)+gcm.Overhead())
	out = append(out, magic...)
	out = append(out, salt...)
	out = append(out, nonce...)
	return gcm.Seal(out, nonce, plain, magic), nil
}

func (s *FileStore) open(blob []byte) ([]byte, error) {
	if !bytes.HasPrefix(blob, magic) || len(blob) < len(magic)+saltSize {
		return nil, ErrCorrupt
	}
	rest := blob[len(magic):]
	salt, rest := rest[:saltSize], rest[saltSize:]
	gcm, err := s.aead(salt)
	if err != nil {
		return nil, err
	}
	if len(rest) < gcm.NonceSize() {
		return nil, ErrCorrupt
	}
	nonce, sealed := rest[:gcm.NonceSize()], rest[gcm.NonceSize():]
	plain, err := gcm.Open(nil, nonce, sealed, magic)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return plain, nil
}

func (s *FileStore) aead(salt []byte) (cipher.AEAD, error) {
	key := argon2.IDKey(s.passphrase, salt, argonTime, argonMemory, argonThreads, keySize)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("save: cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("save: gcm: %w", err)
	}
	return gcm, nil
}
