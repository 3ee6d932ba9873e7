package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/ledongthuc/pdf"

	"mutfago/internal/catalog"
	applog "mutfago/internal/log"
	"mutfago/internal/views/pages"
)

const maxRecipeUploadSize = 5 << 20 // 5 MiB

var knownUnits = map[string]string{
	"kg":    catalog.UnitKg,
	"gr":    catalog.UnitGr,
	"gram":  catalog.UnitGr,
	"g":     catalog.UnitGr,
	"litre": catalog.UnitLitre,
	"lt":    catalog.UnitLitre,
	"l":     catalog.UnitLitre,
	"ml":    catalog.UnitMl,
	"adet":  catalog.UnitAdet,
	"paket": catalog.UnitPaket,
	"şişe":  catalog.UnitSise,
	"demet": catalog.UnitDemet,
	"kutu":  catalog.UnitKutu,
}

// ToolsImportRecipe parses ingredient lines out of an uploaded PDF or pasted
// text and shows the draft for review.
func ToolsImportRecipe(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	userName := ""
	if sessionManager != nil {
		userName = sessionManager.GetString(r.Context(), sessionUserNameKey)
	}

	if r.Method == http.MethodGet {
		renderComponent(w, r, pages.RecipeImportPanel(userName, "", "", "", nil))
		return
	}
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(maxRecipeUploadSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		applog.Error(r.Context(), "failed to parse recipe import form", "error", err)
		renderComponent(w, r, pages.RecipeImportPanel(userName, "", "Dosya çok büyük ya da geçersiz.", "", nil))
		return
	}

	title := strings.TrimSpace(r.FormValue("recipe_title"))
	rawText := strings.TrimSpace(r.FormValue("recipe_text"))

	fileBytes, fileName, err := readRecipeUpload(r)
	if err != nil {
		applog.Error(r.Context(), "recipe upload read failed", "error", err)
		renderComponent(w, r, pages.RecipeImportPanel(userName, "", "Yüklenen dosya okunamadı.", "", nil))
		return
	}
	if len(fileBytes) > 0 {
		storeRecipeUpload(r, fileBytes, fileName)
		extracted, err := recipeTextFromUpload(fileBytes, fileName)
		if err != nil {
			applog.Error(r.Context(), "failed to extract recipe text", "error", err, "file", fileName)
			renderComponent(w, r, pages.RecipeImportPanel(userName, "", "Belge çözümlenemedi, farklı bir format deneyin.", "", nil))
			return
		}
		if rawText != "" {
			rawText += "\n"
		}
		rawText += extracted
	}

	if strings.TrimSpace(rawText) == "" {
		renderComponent(w, r, pages.RecipeImportPanel(userName, "", "Çözümlemeden önce metin girin veya bir dosya yükleyin.", "", nil))
		return
	}

	parsedTitle, ingredients := parseRecipeText(rawText)
	if title == "" {
		title = parsedTitle
	}
	if title == "" {
		title = "İsimsiz Tarif"
	}
	if len(ingredients) == 0 {
		renderComponent(w, r, pages.RecipeImportPanel(userName, "", "Metinden hiç malzeme satırı çıkarılamadı.", "", nil))
		return
	}

	message := fmt.Sprintf("%d malzeme satırı çözümlendi.", len(ingredients))
	renderComponent(w, r, pages.RecipeImportPanel(userName, message, "", title, ingredients))
}

func readRecipeUpload(r *http.Request) ([]byte, string, error) {
	file, header, err := r.FormFile("recipe_file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, "", nil
		}
		return nil, "", err
	}
	defer file.Close()

	if header.Size > maxRecipeUploadSize {
		return nil, "", fmt.Errorf("file exceeds %d bytes", maxRecipeUploadSize)
	}

	buf := bytes.NewBuffer(make([]byte, 0, header.Size))
	if _, err := io.Copy(buf, file); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), header.Filename, nil
}

// storeRecipeUpload keeps a copy of the uploaded document so a bad parse can
// be diagnosed later. Failures are logged and ignored.
func storeRecipeUpload(r *http.Request, data []byte, name string) {
	if uploadsDir == "" {
		return
	}
	if err := os.MkdirAll(uploadsDir, 0o755); err != nil {
		applog.Warn(r.Context(), "uploads directory unavailable", "dir", uploadsDir, "error", err)
		return
	}
	base := filepath.Base(name)
	if base == "." || base == "/" {
		base = "upload"
	}
	target := filepath.Join(uploadsDir, fmt.Sprintf("%d_%s", time.Now().UnixNano(), base))
	if err := os.WriteFile(target, data, 0o644); err != nil {
		applog.Warn(r.Context(), "failed to store upload", "file", target, "error", err)
	}
}

func recipeTextFromUpload(data []byte, name string) (string, error) {
	if strings.EqualFold(filepath.Ext(name), ".pdf") || bytes.HasPrefix(data, []byte("%PDF")) {
		return extractTextFromPDF(data)
	}
	return string(data), nil
}

func extractTextFromPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	var builder strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", err
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}
	return builder.String(), nil
}

// parseRecipeText scans for "quantity unit name" ingredient lines. The first
// non-matching line becomes the title candidate.
func parseRecipeText(text string) (string, []pages.DraftIngredient) {
	var title string
	var ingredients []pages.DraftIngredient

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-•*"))
		if line == "" {
			continue
		}

		if ingredient, ok := parseIngredientLine(line); ok {
			ingredients = append(ingredients, ingredient)
			continue
		}
		if title == "" {
			title = line
		}
	}
	return title, ingredients
}

func parseIngredientLine(line string) (pages.DraftIngredient, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return pages.DraftIngredient{}, false
	}

	quantity, err := strconv.ParseFloat(strings.ReplaceAll(fields[0], ",", "."), 64)
	if err != nil || quantity <= 0 {
		return pages.DraftIngredient{}, false
	}

	unit := catalog.UnitAdet
	nameStart := 1
	if canonical, ok := knownUnits[strings.ToLower(fields[1])]; ok && len(fields) > 2 {
		unit = canonical
		nameStart = 2
	}

	name := catalog.NormalizeItemName(strings.Join(fields[nameStart:], " "))
	if name == "" {
		return pages.DraftIngredient{}, false
	}
	if nameStart == 1 {
		unit = catalog.InferDefaultUnit(name, "")
	}

	return pages.DraftIngredient{Name: name, Quantity: quantity, Unit: unit}, true
}

func renderComponent(w http.ResponseWriter, r *http.Request, component templ.Component) {
	if err := component.Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render component", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
