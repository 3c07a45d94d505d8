package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/quantastica/qps-client/internal/domain"
	"github.com/quantastica/qps-client/internal/ports"
)

const (
	ProfilePathKey    = "profile.path"
	PythonOverrideKey = "python_executable"
	profileFileMode   = 0o600
	profileDirMode    = 0o700
	profileConfigDir  = ".qps"
	profileConfigFile = "backends.toml"
	tempFilePattern   = ".backends-*.toml.tmp"
)

// Repository stores the backend command profile as a TOML file.
type Repository struct {
	profilePath    string
	pythonOverride string
	mu             *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.ProfileRepository = (*Repository)(nil)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	cfg.SetDefault(ProfilePathKey, filepath.Join(homeDir, profileConfigDir, profileConfigFile))

	profilePath := strings.TrimSpace(cfg.GetString(ProfilePathKey))
	if profilePath == "" {
		return nil, errors.New("profile path is empty")
	}
	profilePath, err = normalizeProfilePath(profilePath)
	if err != nil {
		return nil, err
	}

	return &Repository{
		profilePath:    profilePath,
		pythonOverride: strings.TrimSpace(cfg.GetString(PythonOverrideKey)),
		mu:             lockForPath(profilePath),
	}, nil
}

func (r *Repository) Path() string {
	return r.profilePath
}

// Load returns the stored profile, or the defaults when no file exists. A
// configured python executable takes precedence over the file.
func (r *Repository) Load(ctx context.Context) (domain.Profile, error) {
	if err := ctx.Err(); err != nil {
		return domain.Profile{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.Profile{}, err
	}

	profile, err := fromSchema(file)
	if err != nil {
		return domain.Profile{}, err
	}
	if r.pythonOverride != "" {
		profile.Python.Executable = r.pythonOverride
	}

	return profile, nil
}

func (r *Repository) Save(ctx context.Context, profile domain.Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !profile.Python.ListStyle.Valid() {
		return fmt.Errorf("invalid python list style %q", profile.Python.ListStyle)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.writeSchema(toSchema(profile))
}

func (r *Repository) Exists(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	_, err := os.Stat(r.profilePath)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("stat profile file: %w", err)
}

func (r *Repository) readSchema() (fileSchema, error) {
	var file fileSchema

	data, err := os.ReadFile(r.profilePath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fileSchema{}, fmt.Errorf("read profile file: %w", err)
		}
	} else if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode profile file: %w", err)
	}

	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func normalizeProfilePath(path string) (string, error) {
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(homeDir, rest)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve profile path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.profilePath), profileDirMode); err != nil {
		return fmt.Errorf("create profile directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode profile file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.profilePath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp profile file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp profile file: %w", err)
	}

	if err := tempFile.Chmod(profileFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp profile file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp profile file: %w", err)
	}

	if err := os.Rename(tempName, r.profilePath); err != nil {
		return fmt.Errorf("replace profile file: %w", err)
	}

	cleanup = false
	return nil
}

func toSchema(profile domain.Profile) fileSchema {
	return fileSchema{
		Version: currentSchemaVersion,
		Toaster: toasterSchema{
			Binary:      profile.Toaster.Binary,
			VersionFlag: profile.Toaster.VersionFlag,
			RunCommand:  profile.Toaster.RunCommand,
		},
		Python: pythonSchema{
			Executable: profile.Python.Executable,
			ListStyle:  string(profile.Python.ListStyle),
		},
		Rigetti: rigettiSchema{
			CLI:                 profile.Rigetti.CLI,
			LatticesCommand:     profile.Rigetti.LatticesCommand,
			ReservationsCommand: profile.Rigetti.ReservationsCommand,
		},
		Translator: translatorSchema{Command: profile.Translator.Command},
	}
}

func fromSchema(file fileSchema) (domain.Profile, error) {
	listStyle := domain.ListStyle(strings.ToLower(strings.TrimSpace(file.Python.ListStyle)))
	if !listStyle.Valid() {
		return domain.Profile{}, fmt.Errorf("invalid python list style %q", file.Python.ListStyle)
	}

	return domain.Profile{
		Toaster: domain.ToasterProfile{
			Binary:      file.Toaster.Binary,
			VersionFlag: file.Toaster.VersionFlag,
			RunCommand:  file.Toaster.RunCommand,
		},
		Python: domain.PythonProfile{
			Executable: file.Python.Executable,
			ListStyle:  listStyle,
		},
		Rigetti: domain.RigettiProfile{
			CLI:                 file.Rigetti.CLI,
			LatticesCommand:     file.Rigetti.LatticesCommand,
			ReservationsCommand: file.Rigetti.ReservationsCommand,
		},
		Translator: domain.TranslatorProfile{Command: strings.TrimSpace(file.Translator.Command)},
	}, nil
}
