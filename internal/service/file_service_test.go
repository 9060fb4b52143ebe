package service_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"claimlens/internal/config"
	"claimlens/internal/domain"
	"claimlens/internal/port"
	"claimlens/internal/service"
	"claimlens/mocks"
)

func testS3Config() config.S3Config {
	return config.S3Config{
		Region:        "us-east-1",
		Bucket:        "test-bucket",
		MaxFileSizeMB: 25,
		PresignExpiry: 3600,
	}
}

// createMultipartFile creates a fake multipart file header and content for testing.
func createMultipartFile(filename string, content []byte, contentType string) (multipart.File, *multipart.FileHeader) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)

	part, _ := writer.CreatePart(h)
	_, _ = part.Write(content)
	writer.Close()

	reader := multipart.NewReader(body, writer.Boundary())
	form, _ := reader.ReadForm(int64(len(content) + 1024))
	file, _ := form.File["file"][0].Open()
	return file, form.File["file"][0]
}

// pdfContent returns minimal valid PDF bytes.
func pdfContent() []byte {
	return []byte("%PDF-1.4 test content that is at least a few bytes long for detection purposes")
}

func TestFileService_Upload_Success_PDF(t *testing.T) {
	fileRepo := new(mocks.MockPolicyFileRepo)
	storage := new(mocks.MockObjectStorage)
	cfg := testS3Config()
	svc := service.NewFileService(fileRepo, storage, &cfg)

	file, header := createMultipartFile("policy.pdf", pdfContent(), "application/pdf")
	defer file.Close()

	fileRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.PolicyFile")).Return(nil)
	storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Return(&port.UploadOutput{Location: "https://test-bucket.s3.amazonaws.com/test", ETag: "abc"}, nil)
	fileRepo.On("UpdateStatus", mock.Anything, mock.AnythingOfType("uuid.UUID"), domain.FileStatusUploaded).Return(nil)

	result, err := svc.Upload(context.Background(), service.FileUploadInput{File: file, Header: header})

	assert.NoError(t, err)
	assert.Equal(t, domain.FileStatusUploaded, result.Status)
	assert.Equal(t, domain.FileTypePDF, result.FileType)
	assert.Equal(t, "policy.pdf", result.OriginalName)
	assert.Equal(t, "test-bucket", result.S3Bucket)

	fileRepo.AssertExpectations(t)
	storage.AssertExpectations(t)
}

func TestFileService_Upload_Success_Text(t *testing.T) {
	fileRepo := new(mocks.MockPolicyFileRepo)
	storage := new(mocks.MockObjectStorage)
	cfg := testS3Config()
	svc := service.NewFileService(fileRepo, storage, &cfg)

	file, header := createMultipartFile("terms.txt", []byte("Plain policy clauses for testing."), "text/plain")
	defer file.Close()

	fileRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.PolicyFile")).Return(nil)
	storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Return(&port.UploadOutput{Location: "https://s3/test", ETag: "abc"}, nil)
	fileRepo.On("UpdateStatus", mock.Anything, mock.AnythingOfType("uuid.UUID"), domain.FileStatusUploaded).Return(nil)

	result, err := svc.Upload(context.Background(), service.FileUploadInput{File: file, Header: header})

	assert.NoError(t, err)
	assert.Equal(t, domain.FileTypeTXT, result.FileType)
}

func TestFileService_Upload_UnsupportedExtension(t *testing.T) {
	fileRepo := new(mocks.MockPolicyFileRepo)
	storage := new(mocks.MockObjectStorage)
	cfg := testS3Config()
	svc := service.NewFileService(fileRepo, storage, &cfg)

	file, header := createMultipartFile("malware.exe", []byte("MZ fake exe content"), "application/octet-stream")
	defer file.Close()

	result, err := svc.Upload(context.Background(), service.FileUploadInput{File: file, Header: header})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}

func TestFileService_Upload_FileTooLarge(t *testing.T) {
	fileRepo := new(mocks.MockPolicyFileRepo)
	storage := new(mocks.MockObjectStorage)
	cfg := testS3Config()
	cfg.MaxFileSizeMB = 1
	svc := service.NewFileService(fileRepo, storage, &cfg)

	file, header := createMultipartFile("large.pdf", pdfContent(), "application/pdf")
	defer file.Close()
	header.Size = 2 * 1024 * 1024 // 2MB

	result, err := svc.Upload(context.Background(), service.FileUploadInput{File: file, Header: header})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
}

func TestFileService_Upload_StorageFailure(t *testing.T) {
	fileRepo := new(mocks.MockPolicyFileRepo)
	storage := new(mocks.MockObjectStorage)
	cfg := testS3Config()
	svc := service.NewFileService(fileRepo, storage, &cfg)

	file, header := createMultipartFile("policy.pdf", pdfContent(), "application/pdf")
	defer file.Close()

	fileRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.PolicyFile")).Return(nil)
	storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Return(nil, io.ErrUnexpectedEOF)
	fileRepo.On("UpdateStatus", mock.Anything, mock.AnythingOfType("uuid.UUID"), domain.FileStatusFailed).Return(nil)

	result, err := svc.Upload(context.Background(), service.FileUploadInput{File: file, Header: header})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrUploadFailed)

	fileRepo.AssertExpectations(t)
	storage.AssertExpectations(t)
}

func TestFileService_GetByID_NotFound(t *testing.T) {
	fileRepo := new(mocks.MockPolicyFileRepo)
	storage := new(mocks.MockObjectStorage)
	cfg := testS3Config()
	svc := service.NewFileService(fileRepo, storage, &cfg)

	fileID := uuid.New()
	fileRepo.On("GetByID", mock.Anything, fileID).Return(nil, domain.ErrNotFound)

	result, err := svc.GetByID(context.Background(), fileID)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFileService_Fetch_Success(t *testing.T) {
	fileRepo := new(mocks.MockPolicyFileRepo)
	storage := new(mocks.MockObjectStorage)
	cfg := testS3Config()
	svc := service.NewFileService(fileRepo, storage, &cfg)

	fileID := uuid.New()
	meta := &domain.PolicyFile{
		ID:           fileID,
		OriginalName: "policy.txt",
		ContentType:  "text/plain",
		S3Bucket:     "test-bucket",
		S3Key:        "policies/test/policy.txt",
		Status:       domain.FileStatusUploaded,
	}
	fileRepo.On("GetByID", mock.Anything, fileID).Return(meta, nil)
	storage.On("Download", mock.Anything, "test-bucket", "policies/test/policy.txt").
		Return([]byte("Clause 1: covered."), nil)

	gotMeta, data, err := svc.Fetch(context.Background(), fileID)

	require.NoError(t, err)
	assert.Equal(t, meta, gotMeta)
	assert.Equal(t, []byte("Clause 1: covered."), data)
}

func TestFileService_Fetch_DownloadFailure(t *testing.T) {
	fileRepo := new(mocks.MockPolicyFileRepo)
	storage := new(mocks.MockObjectStorage)
	cfg := testS3Config()
	svc := service.NewFileService(fileRepo, storage, &cfg)

	fileID := uuid.New()
	meta := &domain.PolicyFile{ID: fileID, S3Bucket: "test-bucket", S3Key: "policies/x"}
	fileRepo.On("GetByID", mock.Anything, fileID).Return(meta, nil)
	storage.On("Download", mock.Anything, "test-bucket", "policies/x").
		Return(nil, io.ErrUnexpectedEOF)

	gotMeta, data, err := svc.Fetch(context.Background(), fileID)

	assert.Nil(t, gotMeta)
	assert.Nil(t, data)
	assert.Error(t, err)
}

func TestFileService_Delete_Success(t *testing.T) {
	fileRepo := new(mocks.MockPolicyFileRepo)
	storage := new(mocks.MockObjectStorage)
	cfg := testS3Config()
	svc := service.NewFileService(fileRepo, storage, &cfg)

	fileID := uuid.New()
	meta := &domain.PolicyFile{
		ID:       fileID,
		S3Bucket: "test-bucket",
		S3Key:    "policies/test/policy.pdf",
		Status:   domain.FileStatusUploaded,
	}

	fileRepo.On("GetByID", mock.Anything, fileID).Return(meta, nil)
	storage.On("Delete", mock.Anything, "test-bucket", "policies/test/policy.pdf").Return(nil)
	fileRepo.On("Delete", mock.Anything, fileID).Return(nil)

	err := svc.Delete(context.Background(), fileID)

	assert.NoError(t, err)
	fileRepo.AssertExpectations(t)
	storage.AssertExpectations(t)
}

func TestFileService_GetDownloadURL_Success(t *testing.T) {
	fileRepo := new(mocks.MockPolicyFileRepo)
	storage := new(mocks.MockObjectStorage)
	cfg := testS3Config()
	svc := service.NewFileService(fileRepo, storage, &cfg)

	fileID := uuid.New()
	meta := &domain.PolicyFile{
		ID:       fileID,
		S3Bucket: "test-bucket",
		S3Key:    "policies/test/policy.pdf",
	}

	fileRepo.On("GetByID", mock.Anything, fileID).Return(meta, nil)
	storage.On("GetPresignedURL", mock.Anything, "test-bucket", "policies/test/policy.pdf", int64(3600)).
		Return("https://presigned-url.example.com/test", nil)

	url, err := svc.GetDownloadURL(context.Background(), fileID)

	assert.NoError(t, err)
	assert.Equal(t, "https://presigned-url.example.com/test", url)
}
