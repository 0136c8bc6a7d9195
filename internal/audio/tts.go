package audio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"
)

const (
	ttsRequestTimeout = 10 * time.Second
	googleTTSURL      = "https://translate.google.com/translate_tts"
)

// TTSService turns words and phrases into cached MP3 files
type TTSService struct {
	audioDir string
	baseURL  string
	client   *http.Client
}

// NewTTSService creates a new TTS service writing into audioDir. An empty
// endpoint uses Google Translate's speech endpoint.
func NewTTSService(audioDir, endpoint string) *TTSService {
	if endpoint == "" {
		endpoint = googleTTSURL
	}
	return &TTSService{
		audioDir: audioDir,
		baseURL:  endpoint,
		client:   &http.Client{Timeout: ttsRequestTimeout},
	}
}

// Dir returns the directory audio files are cached in
func (s *TTSService) Dir() string {
	return s.audioDir
}

// WordAudio returns the cached file name for a spoken target word,
// generating it on first use. Catalog words are upper case and are
// lowered so the voice reads them as words rather than acronyms.
func (s *TTSService) WordAudio(ctx context.Context, word string, speed float64) (string, error) {
	return s.generate(ctx, SpokenForm(word), "word_"+word, speed)
}

// SpelledAudio returns a file that reads the word letter by letter
func (s *TTSService) SpelledAudio(ctx context.Context, word string, speed float64) (string, error) {
	return s.generate(ctx, SpelledForm(word), "spell_"+word, speed)
}

// PhraseAudio returns a file for a feedback phrase
func (s *TTSService) PhraseAudio(ctx context.Context, phrase string, speed float64) (string, error) {
	return s.generate(ctx, phrase, "phrase_"+phrase, speed)
}

// SpokenForm lowers an all-caps word of more than one letter
func SpokenForm(word string) string {
	if len(word) > 1 && strings.ToUpper(word) == word {
		return strings.ToLower(word)
	}
	return word
}

// SpelledForm separates letters so each one is read aloud
func SpelledForm(word string) string {
	var letters []string
	for _, r := range strings.ToLower(word) {
		if unicode.IsLetter(r) {
			letters = append(letters, string(r))
		}
	}
	return strings.Join(letters, ", ")
}

// CacheName builds the file name used for a prefix and speed
func CacheName(prefix string, speed float64) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(prefix)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			b.WriteRune(r)
		case r == ' ' || r == '-':
			b.WriteRune('_')
		}
	}
	if speed > 0 && speed != 1.0 {
		b.WriteString("_s")
		b.WriteString(strconv.FormatFloat(speed, 'f', -1, 64))
	}
	return b.String() + ".mp3"
}

func (s *TTSService) generate(ctx context.Context, text, prefix string, speed float64) (string, error) {
	filename := CacheName(prefix, speed)
	path := filepath.Join(s.audioDir, filename)

	if _, err := os.Stat(path); err == nil {
		return filename, nil
	}

	if err := os.MkdirAll(s.audioDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create audio directory: %w", err)
	}
	if err := s.fetch(ctx, text, speed, path); err != nil {
		return "", fmt.Errorf("failed to generate audio: %w", err)
	}
	return filename, nil
}

// fetch downloads speech from Google Translate's TTS endpoint, which needs
// no API key. The file is written under a temporary name and renamed so a
// failed download never leaves a partial MP3 in the cache.
func (s *TTSService) fetch(ctx context.Context, text string, speed float64, outputPath string) error {
	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("q", text)
	params.Set("tl", "en")
	params.Set("client", "tw-ob")
	params.Set("textlen", strconv.Itoa(len(text)))
	if speed > 0 && speed != 1.0 {
		params.Set("ttsspeed", strconv.FormatFloat(speed, 'f', -1, 64))
	}

	ctx, cancel := context.WithTimeout(ctx, ttsRequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp(filepath.Dir(outputPath), ".tts-*")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write audio file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}
	return os.Rename(tmp.Name(), outputPath)
}

// BatchGenerateAudio generates word audio for every word at normal speed
func (s *TTSService) BatchGenerateAudio(ctx context.Context, words []string) (map[string]string, error) {
	results := make(map[string]string)

	for _, word := range words {
		filename, err := s.WordAudio(ctx, word, 1.0)
		if err != nil {
			return results, fmt.Errorf("failed to generate audio for '%s': %w", word, err)
		}
		results[word] = filename
	}

	return results, nil
}

// PruneAudioFiles removes cached MP3 files not listed in keep and returns
// the names it deleted
func (s *TTSService) PruneAudioFiles(keep map[string]bool) ([]string, error) {
	files, err := s.GetAllAudioFiles()
	if err != nil {
		return nil, err
	}

	var removed []string
	for _, name := range files {
		if keep[name] {
			continue
		}
		if err := os.Remove(filepath.Join(s.audioDir, name)); err != nil && !os.IsNotExist(err) {
			return removed, fmt.Errorf("failed to delete %s: %w", name, err)
		}
		removed = append(removed, name)
	}
	return removed, nil
}

// GetAllAudioFiles returns a list of all MP3 files in the audio directory
func (s *TTSService) GetAllAudioFiles() ([]string, error) {
	files, err := os.ReadDir(s.audioDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio directory: %w", err)
	}

	var audioFiles []string
	for _, file := range files {
		if !file.IsDir() && filepath.Ext(file.Name()) == ".mp3" {
			audioFiles = append(audioFiles, file.Name())
		}
	}

	return audioFiles, nil
}
