package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	config "github.com/abdulhameed-s/leveling_tracker/configs"
	"github.com/abdulhameed-s/leveling_tracker/database"
	"github.com/abdulhameed-s/leveling_tracker/models"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// IssueRankCertificate renders and stores a certificate PDF the first time a
// user reaches a rank. Safe to call repeatedly; duplicates are skipped.
func IssueRankCertificate(userID uuid.UUID, rank string) {
	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		log.Printf("🔥 Rank certificate: user %s not found: %v", userID, err)
		return
	}

	var existing models.RankCertificate
	if err := database.DB.Where("user_id = ? AND rank = ?", userID, rank).First(&existing).Error; err == nil {
		return
	}

	htmlData, err := generateCertificateHTML(user.Username, rank, user.Points)
	if err != nil {
		log.Printf("🔥 Failed to generate certificate HTML: %v", err)
		return
	}

	pdfBytes, err := generatePDFFromHTML(htmlData)
	if err != nil {
		log.Printf("🔥 Failed to generate PDF: %v", err)
		return
	}

	uploadURL, err := uploadCertificate(pdfBytes, userID.String(), rank)
	if err != nil {
		log.Printf("🔥 Failed to upload certificate: %v", err)
		return
	}

	certificate := models.RankCertificate{
		UserID:         userID,
		Rank:           rank,
		CertificateURL: uploadURL,
		IssuedAt:       time.Now(),
	}
	if err := database.DB.Create(&certificate).Error; err != nil {
		log.Printf("🔥 Failed to record rank certificate for user %s: %v", userID, err)
	} else {
		log.Printf("✅ Issued rank %s certificate for %s.", rank, user.Username)
	}
}

func generateCertificateHTML(username, rank string, points int) (string, error) {
	tmpl, err := template.ParseFiles("templates/rank_certificate.html")
	if err != nil {
		return "", err
	}

	data := struct {
		Username string
		Rank     string
		Points   int
		IssuedOn string
	}{
		Username: username,
		Rank:     rank,
		Points:   points,
		IssuedOn: time.Now().Format("January 2, 2006"),
	}

	var renderedHTML bytes.Buffer
	if err := tmpl.Execute(&renderedHTML, data); err != nil {
		return "", err
	}
	return renderedHTML.String(), nil
}

func generatePDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadCertificate(pdfBytes []byte, userID, rank string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(pdfBytes), uploader.UploadParams{
		Folder:   "leveling_tracker_certificates",
		PublicID: fmt.Sprintf("rank_%s_%s", userID, rank),
		Format:   "pdf",
	})
	if err != nil {
		return "", err
	}
	return uploadResult.SecureURL, nil
}
