package handlers

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// MaxImageBytes caps product image uploads.
const MaxImageBytes = 5 << 20

var allowedImageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
	".gif":  true,
}

// UploadProductImage handles POST /api/products/image (admin only).
// It saves the file into UploadDir and returns the URL to put in a product's image field.
func (h *Handlers) UploadProductImage(c *gin.Context) {
	// 1. Get the file from the request
	file, err := c.FormFile("file")
	if err != nil {
		respondValidation(c, FieldErrors{"file": "is required"})
		return
	}

	// 2. Check type and size
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		respondValidation(c, FieldErrors{"file": "must be a png, jpg, jpeg, webp or gif image"})
		return
	}
	if file.Size > MaxImageBytes {
		respondValidation(c, FieldErrors{"file": fmt.Sprintf("must be at most %d bytes", MaxImageBytes)})
		return
	}

	// 3. Create the upload directory if it doesn't exist
	uploadPath := h.Settings.UploadDir
	if uploadPath == "" {
		uploadPath = "./uploads"
	}
	if err := os.MkdirAll(uploadPath, 0o755); err != nil {
		log.Printf("create upload dir %s: %v", uploadPath, err)
		respondInternal(c, "Failed to save file")
		return
	}

	// 4. Generate a readable, unique filename (slug + uuid + extension)
	base := slug.Make(strings.TrimSuffix(file.Filename, filepath.Ext(file.Filename)))
	if base == "" {
		base = "image"
	}
	newFilename := fmt.Sprintf("%s-%s%s", base, uuid.New().String(), ext)
	savePath := filepath.Join(uploadPath, newFilename)

	// 5. Save the file
	if err := c.SaveUploadedFile(file, savePath); err != nil {
		log.Printf("save upload %s: %v", savePath, err)
		respondInternal(c, "Failed to save file")
		return
	}

	// 6. Return the public URL
	baseURL := strings.TrimSuffix(h.Settings.BaseURL, "/")
	c.JSON(http.StatusCreated, gin.H{
		"url": fmt.Sprintf("%s/uploads/%s", baseURL, newFilename),
	})
}
