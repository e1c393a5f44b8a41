package tokenstore

import (
	"context"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	apperrors "github.com/jrsteele09/skillshare-client/internal/errors"
	"github.com/jrsteele09/skillshare-client/session"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	fileVersion = 1
	saltLength  = 16

	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
)

var _ session.TokenRepo = (*FileStore)(nil)

var errCorruptDocument = errors.New("corrupt token store document")

// fileDocument is the on-disk layout: a flat key/value map like browser
// local storage, plus the salt used when values are sealed.
type fileDocument struct {
	Version int               `json:"version"`
	Salt    string            `json:"salt,omitempty"`
	Items   map[string]string `json:"items"`
}

// FileStore persists the token in a JSON file, written atomically with 0600
// permissions. With a passphrase, values are sealed with XChaCha20-Poly1305
// under an Argon2id-derived key.
type FileStore struct {
	path       string
	key        string
	passphrase string

	aead     cipher.AEAD
	aeadSalt string
	lock     sync.Mutex
}

func NewFile(cfg Config) (*FileStore, error) {
	if cfg.File == nil || cfg.File.Path == "" {
		return nil, fmt.Errorf("file store requires a path")
	}
	return &FileStore{
		path:       cfg.File.Path,
		key:        storageKey(cfg.Namespace),
		passphrase: cfg.File.Passphrase,
	}, nil
}

func (s *FileStore) Get(_ context.Context) (string, bool, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	doc, err := s.load()
	if err != nil {
		return "", false, err
	}
	value, ok := doc.Items[s.key]
	if !ok {
		return "", false, nil
	}
	if s.passphrase == "" {
		return value, true, nil
	}

	token, err := s.open(doc.Salt, value)
	if err != nil {
		return "", false, err
	}
	return token, true, nil
}

func (s *FileStore) Set(_ context.Context, token string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	doc, err := s.loadForWrite()
	if err != nil {
		return err
	}

	value := token
	if s.passphrase != "" {
		if doc.Salt == "" {
			salt := make([]byte, saltLength)
			if _, err := rand.Read(salt); err != nil {
				return errors.Wrap(err, "FileStore.Set rand.Read")
			}
			doc.Salt = base64.StdEncoding.EncodeToString(salt)
		}
		if value, err = s.seal(doc.Salt, token); err != nil {
			return err
		}
	}

	doc.Items[s.key] = value
	return s.save(doc)
}

func (s *FileStore) Delete(_ context.Context) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	doc, err := s.loadForWrite()
	if err != nil {
		return err
	}
	if _, ok := doc.Items[s.key]; !ok {
		return nil
	}
	delete(doc.Items, s.key)
	return s.save(doc)
}

func (s *FileStore) Close(_ context.Context) error {
	return nil
}

func (s *FileStore) load() (*fileDocument, error) {
	doc := &fileDocument{Version: fileVersion, Items: make(map[string]string)}

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return doc, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "FileStore.load ReadFile")
	}
	if len(data) == 0 {
		return doc, nil
	}

	if err := json.Unmarshal(data, doc); err != nil {
		return nil, errors.Wrapf(errCorruptDocument, "FileStore.load Unmarshal: %v", err)
	}
	if doc.Items == nil {
		doc.Items = make(map[string]string)
	}
	return doc, nil
}

// loadForWrite is load for Set and Delete. An unreadable document is replaced
// rather than blocking login and logout; reads still report it.
func (s *FileStore) loadForWrite() (*fileDocument, error) {
	doc, err := s.load()
	if errors.Is(err, errCorruptDocument) {
		log.Warn().Err(err).Str("path", s.path).Msg("discarding corrupt token store")
		return &fileDocument{Version: fileVersion, Items: make(map[string]string)}, nil
	}
	return doc, err
}

func (s *FileStore) save(doc *fileDocument) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return errors.Wrap(err, "FileStore.save MkdirAll")
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "FileStore.save Marshal")
	}

	tmp, err := os.CreateTemp(dir, ".storage-*.json")
	if err != nil {
		return errors.Wrap(err, "FileStore.save CreateTemp")
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "FileStore.save Write")
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return errors.Wrap(err, "FileStore.save Chmod")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "FileStore.save Close")
	}
	return errors.Wrap(os.Rename(tmpName, s.path), "FileStore.save Rename")
}

func (s *FileStore) cipherFor(salt string) (cipher.AEAD, error) {
	if s.aead != nil && s.aeadSalt == salt {
		return s.aead, nil
	}
	rawSalt, err := base64.StdEncoding.DecodeString(salt)
	if err != nil {
		return nil, fmt.Errorf("%w: bad salt", apperrors.ErrSealedToken)
	}
	key := argon2.IDKey([]byte(s.passphrase), rawSalt, argonTime, argonMemory, argonThreads, chacha20poly1305.KeySize)
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, errors.Wrap(err, "FileStore.cipherFor NewX")
	}
	s.aead, s.aeadSalt = aead, salt
	return aead, nil
}

func (s *FileStore) seal(salt, token string) (string, error) {
	aead, err := s.cipherFor(salt)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(token)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", errors.Wrap(err, "FileStore.seal rand.Read")
	}
	sealed := aead.Seal(nonce, nonce, []byte(token), []byte(s.key))
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (s *FileStore) open(salt, value string) (string, error) {
	aead, err := s.cipherFor(salt)
	if err != nil {
		return "", err
	}
	sealed, err := base64.StdEncoding.DecodeString(value)
	if err != nil || len(sealed) < aead.NonceSize() {
		return "", apperrors.ErrSealedToken
	}
	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, ciphertext, []byte(s.key))
	if err != nil {
		return "", apperrors.ErrSealedToken
	}
	return string(plain), nil
}
