package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/diillson/loa-audit-dashboard-go/internal/domain/repository"
	"github.com/diillson/loa-audit-dashboard-go/internal/shared/types"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// ConfigRepositoryImpl implementa o ConfigRepository.
type ConfigRepositoryImpl struct {
	getenv func(string) string
}

// NewConfigRepository cria uma nova implementação do ConfigRepository.
func NewConfigRepository() repository.ConfigRepository {
	return &ConfigRepositoryImpl{getenv: os.Getenv}
}

// LoadConfigFile carrega um arquivo de configuração TOML, YAML ou JSON.
func (r *ConfigRepositoryImpl) LoadConfigFile(filePath string) (*types.Config, error) {
	fileExtension := filepath.Ext(filePath)
	fileExtension = strings.ToLower(fileExtension)

	// Verifica se o arquivo existe
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error accessing config file: %w", err)
	}

	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", filePath)
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config types.Config

	switch fileExtension {
	case ".toml":
		if err := toml.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing TOML file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing YAML file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing JSON file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", fileExtension)
	}

	if config.Month < 0 || config.Month > 12 {
		return nil, fmt.Errorf("config file %s: %w (got %d)", filePath, types.ErrInvalidMonth, config.Month)
	}

	return &config, nil
}

// LoadEnvironment lê os arquivos .env informados (os ausentes são ignorados) e
// aplica as variáveis de ambiente sobre cfg.
func (r *ConfigRepositoryImpl) LoadEnvironment(cfg *types.Config, envFiles ...string) error {
	existing := make([]string, 0, len(envFiles))
	for _, f := range envFiles {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("error accessing env file %s: %w", f, err)
		}
	}
	if len(existing) > 0 {
		// godotenv.Load nunca sobrescreve variáveis já definidas no processo.
		if err := godotenv.Load(existing...); err != nil {
			return fmt.Errorf("error loading env files: %w", err)
		}
	}

	if v := r.getenv("GEMINI_API_KEY"); v != "" {
		cfg.Extraction.APIKey = v
	} else if v := r.getenv("API_KEY"); v != "" {
		cfg.Extraction.APIKey = v
	}
	if v := r.getenv("LOA_EXTRACTION_MODEL"); v != "" {
		cfg.Extraction.Model = v
	}
	if v := r.getenv("LOA_STORAGE_BACKEND"); v != "" {
		cfg.Storage.Backend = v
	}
	if v := r.getenv("LOA_STORAGE_PATH"); v != "" {
		cfg.Storage.Path = v
	}
	if v := r.getenv("LOA_S3_BUCKET"); v != "" {
		cfg.Storage.S3Bucket = v
	}
	if v := r.getenv("AWS_REGION"); v != "" && cfg.Storage.S3Region == "" {
		cfg.Storage.S3Region = v
	}
	if v := r.getenv("LOA_MONTH"); v != "" {
		month, err := strconv.Atoi(v)
		if err != nil || month < 1 || month > 12 {
			return fmt.Errorf("LOA_MONTH=%q: %w", v, types.ErrInvalidMonth)
		}
		cfg.Month = month
	}

	return nil
}
