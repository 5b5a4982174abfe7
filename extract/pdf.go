package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// scannedPDFNotice is returned when no text at all could be extracted,
// typically for scanned or image-only PDFs.
const scannedPDFNotice = "No text could be extracted from this PDF. It may be scanned or contain only images."

// extractPDF extracts text page by page. A page that fails extraction
// contributes a placeholder marker instead of aborting the whole document;
// only a PDF with zero extractable characters yields the scanned-PDF notice.
func (e *Extractor) extractPDF(data []byte) string {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		e.logger.Warn("failed to open PDF", "err", err)
		return fmt.Sprintf("Error extracting content: %v", err)
	}

	var sb strings.Builder
	numPages := reader.NumPage()
	e.logger.Debug("extracting PDF", "pages", numPages)

	for pageNum := 1; pageNum <= numPages; pageNum++ {
		text, pageErr := e.extractPage(reader, pageNum)
		if pageErr != nil {
			e.logger.Warn("failed to extract PDF page", "page", pageNum, "err", pageErr)
			sb.WriteString(fmt.Sprintf("[Error extracting page %d]\n", pageNum))
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	if strings.TrimSpace(sb.String()) == "" {
		return scannedPDFNotice
	}

	return sb.String()
}

// extractPage pulls the plain text of a single page. The pdf library panics
// on some malformed content streams, so the panic is converted to an error
// and the caller continues with the next page.
func (e *Extractor) extractPage(reader *pdf.Reader, pageNum int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("page %d extraction panicked: %v", pageNum, r)
		}
	}()

	page := reader.Page(pageNum)
	if page.V.IsNull() {
		return "", fmt.Errorf("page %d is missing", pageNum)
	}

	return page.GetPlainText(nil)
}
