// Package keychain хранит пару учетных данных для биометрического входа
// в зашифрованном файле на устройстве.
package keychain

import (
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"SafeKidsMobile/models"
)

// ErrNoCredentials возвращается Retrieve, если учетные данные не сохранены
var ErrNoCredentials = errors.New("no stored credentials")

const saltSize = 32

// Keychain шифрует учетные данные ключом, выведенным из секрета устройства.
// Формат файла: salt || nonce || ciphertext.
type Keychain struct {
	path   string
	secret []byte
}

// New создает keychain, пишущий в указанный файл.
// Секрет устройства поставляет платформенный слой.
func New(path string, deviceSecret []byte) *Keychain {
	return &Keychain{path: path, secret: deviceSecret}
}

// Store шифрует и сохраняет пару email/пароль, затирая предыдущую
func (k *Keychain) Store(email, password string) error {
	plaintext, err := json.Marshal(models.LoginCredentials{Email: email, Password: password})
	if err != nil {
		return err
	}

	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return err
	}

	aead, err := k.aead(salt)
	if err != nil {
		return err
	}

	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := rand.Read(nonce); err != nil {
		return err
	}

	blob := append(salt, nonce...)
	blob = aead.Seal(blob, nonce, plaintext, nil)

	if err := os.MkdirAll(filepath.Dir(k.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(k.path, blob, 0o600)
}

// Retrieve расшифровывает и возвращает сохраненные учетные данные
func (k *Keychain) Retrieve() (models.LoginCredentials, error) {
	blob, err := os.ReadFile(k.path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.LoginCredentials{}, ErrNoCredentials
		}
		return models.LoginCredentials{}, err
	}

	if len(blob) < saltSize+chacha20poly1305.NonceSizeX {
		return models.LoginCredentials{}, fmt.Errorf("credential file is truncated")
	}

	salt := blob[:saltSize]
	nonce := blob[saltSize : saltSize+chacha20poly1305.NonceSizeX]
	ciphertext := blob[saltSize+chacha20poly1305.NonceSizeX:]

	aead, err := k.aead(salt)
	if err != nil {
		return models.LoginCredentials{}, err
	}

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return models.LoginCredentials{}, fmt.Errorf("failed to decrypt credentials: %w", err)
	}

	var credentials models.LoginCredentials
	if err := json.Unmarshal(plaintext, &credentials); err != nil {
		return models.LoginCredentials{}, err
	}
	return credentials, nil
}

// Clear удаляет сохраненные учетные данные. Отсутствие файла — не ошибка.
func (k *Keychain) Clear() error {
	err := os.Remove(k.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// aead выводит ключ из секрета устройства и соли и создает XChaCha20-Poly1305
func (k *Keychain) aead(salt []byte) (cipher.AEAD, error) {
	key, err := scrypt.Key(k.secret, salt, 1<<15, 8, 1, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	return chacha20poly1305.NewX(key)
}
