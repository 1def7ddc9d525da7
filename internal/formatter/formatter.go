// package formatter provides functions to export study packs to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/windlearn/kazegaku/internal/models"
	"github.com/windlearn/kazegaku/internal/shared"
)

// ExportToCSV converts a study pack's vocabulary to flashcard CSV with columns: Word, Reading, Meaning, Context
func ExportToCSV(pack *models.StudyPack) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Word", "Reading", "Meaning", "Context"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	if pack.Analysis != nil {
		for _, word := range pack.Analysis.Vocabulary {
			record := []string{word.Word, word.Reading, word.Meaning, word.Context}
			if err := writer.Write(record); err != nil {
				return nil, fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a study pack to a Markdown study sheet with optional cover image
func ExportToMarkdown(pack *models.StudyPack, imageFilename string) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s (%s)\n\n", pack.Song.Title, pack.Song.RomajiTitle))

	if imageFilename != "" {
		buf.WriteString(fmt.Sprintf("![Cover](%s)\n\n", imageFilename))
	}

	if pack.Song.Description != "" {
		buf.WriteString(fmt.Sprintf("%s\n\n", pack.Song.Description))
	}
	buf.WriteString(fmt.Sprintf("**Difficulty**: %s\n\n", pack.Song.Difficulty))

	if pack.Analysis != nil {
		if pack.Analysis.Summary != "" {
			buf.WriteString("## 歌曲摘要\n\n")
			buf.WriteString(pack.Analysis.Summary + "\n\n")
		}

		if len(pack.Analysis.Vocabulary) > 0 {
			buf.WriteString("## 重點單字\n\n")
			buf.WriteString("| 單字 | 讀音 | 意思 |\n")
			buf.WriteString("| --- | --- | --- |\n")
			for _, word := range pack.Analysis.Vocabulary {
				buf.WriteString(fmt.Sprintf("| %s | %s | %s |\n", word.Word, word.Reading, word.Meaning))
			}
			buf.WriteString("\n")
		}

		if len(pack.Analysis.Grammar) > 0 {
			buf.WriteString("## 文法解說\n\n")
			for _, point := range pack.Analysis.Grammar {
				buf.WriteString(fmt.Sprintf("### %s\n\n%s\n\n", point.Point, point.Explanation))
				if point.Example != "" {
					buf.WriteString(fmt.Sprintf("> %s\n\n", point.Example))
				}
			}
		}

		if pack.Analysis.CulturalNote != "" {
			buf.WriteString("## 文化筆記\n\n")
			buf.WriteString(pack.Analysis.CulturalNote + "\n\n")
		}
	}

	if len(pack.Quiz) > 0 {
		buf.WriteString("## 小測驗\n\n")
		for i, q := range pack.Quiz {
			buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, q.Question))
			for j, option := range q.Options {
				marker := " "
				if j == q.CorrectIndex {
					marker = "x"
				}
				buf.WriteString(fmt.Sprintf("   - [%s] %s\n", marker, option))
			}
			if q.Explanation != "" {
				buf.WriteString(fmt.Sprintf("   > %s\n", q.Explanation))
			}
			buf.WriteString("\n")
		}
	}

	if len(pack.History) > 0 {
		buf.WriteString("## 測驗紀錄\n\n")
		for _, result := range pack.History {
			buf.WriteString(fmt.Sprintf("- %s: %d/%d\n", result.CreatedAt().Format("2006-01-02"), result.Score(), result.Total()))
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// ExportToText converts a study pack to plain text format
func ExportToText(pack *models.StudyPack) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Song: %s (%s)\n", pack.Song.Title, pack.Song.RomajiTitle))
	buf.WriteString(fmt.Sprintf("Difficulty: %s\n\n", pack.Song.Difficulty))

	if pack.Analysis != nil {
		if pack.Analysis.Summary != "" {
			buf.WriteString(pack.Analysis.Summary + "\n\n")
		}
		for i, word := range pack.Analysis.Vocabulary {
			buf.WriteString(fmt.Sprintf("%d. %s（%s）- %s\n", i+1, word.Word, word.Reading, word.Meaning))
		}
	}

	return buf.Bytes(), nil
}

// DownloadImage downloads an image from the given URL and returns the raw bytes
func DownloadImage(url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("empty URL provided")
	}

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return imageData, nil
}

// ToMetadataJSON generates a JSON representation of song metadata (without lyrics)
func ToMetadataJSON(song models.Song) ([]byte, error) {
	meta := struct {
		ID          string `json:"id"`
		Title       string `json:"title"`
		RomajiTitle string `json:"romaji_title"`
		Difficulty  string `json:"difficulty"`
		VideoURL    string `json:"video_url,omitempty"`
	}{
		ID:          song.ID,
		Title:       song.Title,
		RomajiTitle: song.RomajiTitle,
		Difficulty:  string(song.Difficulty),
		VideoURL:    song.VideoURL(),
	}
	return shared.MarshalJSON(meta, true)
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	CardsFile    string
	MetadataFile string
}

// WriteCSVExport exports a study pack to flashcard CSV with accompanying metadata JSON file.
//
// Defaults to the song ID as the base filename & creates {base}_cards.csv and {base}_metadata.json
func WriteCSVExport(pack *models.StudyPack, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = pack.Song.ID
	}

	csvData, err := ExportToCSV(pack)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	cardsFile := baseFilepath + "_cards.csv"
	if err := os.WriteFile(cardsFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	metadataJSON, err := ToMetadataJSON(pack.Song)
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata JSON: %w", err)
	}

	metadataFile := baseFilepath + "_metadata.json"
	if err := os.WriteFile(metadataFile, metadataJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write metadata file: %w", err)
	}

	return &CSVExportResult{
		CardsFile:    cardsFile,
		MetadataFile: metadataFile,
	}, nil
}

// MarkdownExportResult contains information about files created by WriteMarkdownExport
type MarkdownExportResult struct {
	Directory  string
	Files      []string
	CoverImage string
}

// WriteMarkdownExport exports a study pack to Markdown format in a dedicated directory.
//
// Directory name defaults to the song ID.
// If the song carries a cover image URL, attempts to download it.
// Creates a directory structure: {dir}/README.md and optionally {dir}/cover.jpg
func WriteMarkdownExport(pack *models.StudyPack, outputDir string) (*MarkdownExportResult, error) {
	if outputDir == "" {
		outputDir = pack.Song.ID
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	result := &MarkdownExportResult{
		Directory: outputDir,
		Files:     []string{},
	}

	var coverImageFilename string
	if pack.Song.CoverImage != "" {
		imageData, err := DownloadImage(pack.Song.CoverImage)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to download cover image: %v\n", err)
		} else {
			coverImageFilename = "cover.jpg"
			coverImagePath := fmt.Sprintf("%s/%s", outputDir, coverImageFilename)
			if err := os.WriteFile(coverImagePath, imageData, 0644); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to save cover image: %v\n", err)
				coverImageFilename = ""
			} else {
				result.CoverImage = coverImagePath
				result.Files = append(result.Files, coverImagePath)
			}
		}
	}

	mdData, err := ExportToMarkdown(pack, coverImageFilename)
	if err != nil {
		return nil, fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := fmt.Sprintf("%s/README.md", outputDir)
	if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write Markdown file: %w", err)
	}

	result.Files = append(result.Files, mdFile)

	return result, nil
}

// WriteTextExport exports a study pack to plain text format.
//
// Defaults to {song.ID}_study.txt as the filename.
func WriteTextExport(pack *models.StudyPack, filepath string) (string, error) {
	if filepath == "" {
		filepath = fmt.Sprintf("%s_study.txt", pack.Song.ID)
	}

	textData, err := ExportToText(pack)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(filepath, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return filepath, nil
}
