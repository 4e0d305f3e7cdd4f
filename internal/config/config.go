package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	InputDir  string
	OutputDir string
	DBPath    string

	MasterPath    string
	TemplatePath  string
	TemplateSheet string

	ListenAddr string

	GroupKeyColumn string
	NetAmtColumn   string
	MaterialColumn string

	ItemNumberHeader string
	AmountHeader     string
	UPCHeader        string
	QuantityHeader   string

	HeaderScanLimit int
	MinOutputRows   int
	CodePadWidth    int
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		InputDir:  getEnv("INPUT_DIR", filepath.Join(cwd, "data", "input")),
		OutputDir: getEnv("OUTPUT_DIR", filepath.Join(cwd, "data", "output")),
		DBPath:    getEnv("DB_PATH", filepath.Join(cwd, "data", "app.db")),

		MasterPath:    getEnv("MASTER_FILE_PATH", filepath.Join(cwd, "reference", "master.xlsx")),
		TemplatePath:  getEnv("TEMPLATE_PATH", filepath.Join(cwd, "reference", "template.xlsx")),
		TemplateSheet: getEnv("TEMPLATE_SHEET", "Item Upload"),

		ListenAddr: getEnv("LISTEN_ADDR", ":5000"),

		GroupKeyColumn: getEnv("COLUMN_GROUP_KEY", "L01 Material Price Group Key"),
		NetAmtColumn:   getEnv("COLUMN_NET_AMT", "Inv Net Amt"),
		MaterialColumn: getEnv("COLUMN_MATERIAL", "Material"),

		ItemNumberHeader: getEnv("TEMPLATE_ITEM_NUMBER", "Item_Number"),
		AmountHeader:     getEnv("TEMPLATE_AMOUNT", "Extended_Amount"),
		UPCHeader:        getEnv("TEMPLATE_UPC", "UPC_Number"),
		QuantityHeader:   getEnv("TEMPLATE_QUANTITY", "Quantity"),

		HeaderScanLimit: getEnvInt("HEADER_SCAN_LIMIT", 4),
		MinOutputRows:   getEnvInt("MIN_OUTPUT_ROWS", 100),
		CodePadWidth:    getEnvInt("CODE_PAD_WIDTH", 12),
	}

	return cfg, nil
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required env var: %s", name)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
