package handlers

import (
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"telemora/internal/config"
)

var log = config.InitLogger()

const ManifestFileName = "tonconnect-manifest.json"

// Manifest is the TonConnect app manifest wallets fetch before connecting.
type Manifest struct {
	Url     string `json:"url"`
	Name    string `json:"name"`
	IconUrl string `json:"iconUrl"`
}

// NewManifestHandler serves the manifest file at path, or fallback when the file does not exist.
func NewManifestHandler(path string, fallback Manifest) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			data, err = json.Marshal(fallback)
		}
		if err != nil {
			log.Error("Error reading manifest: ", err)
			http.Error(w, "Error reading manifest", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Access-Control-Allow-Origin", "*")
		if _, err := w.Write(data); err != nil {
			log.Error("Error writing manifest: ", err)
		}
	}
}

func NewRouter(manifest http.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/"+ManifestFileName, manifest)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}
