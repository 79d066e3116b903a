package routes

import (
	"fmt"
	"io"
	"net/http"

	"github.com/firdaus0729/nurse/storage"
	"github.com/firdaus0729/nurse/utils"
	"github.com/kataras/iris/v12"
)

// UploadImage accepts a multipart image, validates type and size, and writes
// it under the public upload directory with a randomized filename. The type
// check sniffs the actual bytes; the declared Content-Type is not trusted.
func UploadImage(ctx iris.Context) {
	file, header, err := ctx.FormFile("file")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "no_file", "No file provided", ctx)
		return
	}
	defer file.Close()

	if header.Size > storage.MaxUploadSize {
		utils.CreateError(iris.StatusBadRequest, "file_too_large",
			fmt.Sprintf("File too large: %.2fMB. Maximum size is 5MB.", float64(header.Size)/1024/1024), ctx)
		return
	}

	data, readErr := io.ReadAll(io.LimitReader(file, storage.MaxUploadSize+1))
	if readErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if int64(len(data)) > storage.MaxUploadSize {
		utils.CreateError(iris.StatusBadRequest, "file_too_large",
			"File too large. Maximum size is 5MB.", ctx)
		return
	}

	sniffLen := len(data)
	if sniffLen > 512 {
		sniffLen = 512
	}
	mime := http.DetectContentType(data[:sniffLen])
	ext, ok := storage.AllowedUploadType(mime)
	if !ok {
		utils.CreateError(iris.StatusBadRequest, "invalid_file_type",
			fmt.Sprintf("Invalid file type: %s. Only images are allowed.", mime), ctx)
		return
	}

	filename, saveErr := storage.SaveUpload(data, ext)
	if saveErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"url":      "/upload/" + filename,
		"filename": filename,
	})
}
