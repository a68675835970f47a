package premiumize

import (
	"context"
	"net/http"
	"os"

	"github.com/sirupsen/logrus"
)

// Version is sent in the User-Agent header.
const Version = "0.1.0"

// Client represents a Premiumize API client
type Client struct {
	config   *clientConfig
	pipeline *pipeline
}

var _ ClientAPI = (*Client)(nil)

// NewClient creates a new client. An empty apiKey is accepted here; every
// call then fails with ErrMissingAPIKey without touching the network.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	cfg := defaultClientConfig(apiKey)
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.logger == nil {
		cfg.logger = defaultLogger()
	}
	if !cfg.obfuscateSecrets {
		cfg.logger.Warn("premiumize: api key obfuscation is disabled, the raw key will be written to logs")
	}

	if cfg.transport == nil {
		httpClient := cfg.httpClient
		if httpClient == nil {
			httpClient = &http.Client{Timeout: cfg.timeout}
		}
		cfg.transport = NewHTTPTransport(cfg.baseURL, httpClient)
	}

	return &Client{
		config: cfg,
		pipeline: &pipeline{
			apiKey:     cfg.apiKey,
			keyDisplay: cfg.keyDisplay(),
			transport:  cfg.transport,
			logger:     cfg.logger,
			verbose:    cfg.verbose,
		},
	}, nil
}

func defaultLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return logger
}

// Settings returns the client's configuration with the api key scrubbed.
func (c *Client) Settings() Settings {
	return c.config.settings()
}

// AccountInfo retrieves account information
func (c *Client) AccountInfo(ctx context.Context) (*AccountInfo, error) {
	return invoke(ctx, c.pipeline, accountInfoOp, none{})
}

// ListFolder lists a folder, the root folder when req.ID is nil
func (c *Client) ListFolder(ctx context.Context, req ListFolderRequest) (*FolderList, error) {
	return invoke(ctx, c.pipeline, listFolderOp, req)
}

// CreateFolder creates a folder
func (c *Client) CreateFolder(ctx context.Context, req CreateFolderRequest) (*CreatedFolder, error) {
	return invoke(ctx, c.pipeline, createFolderOp, req)
}

// RenameFolder renames a folder
func (c *Client) RenameFolder(ctx context.Context, req RenameRequest) (*StatusResult, error) {
	return invoke(ctx, c.pipeline, renameFolderOp, req)
}

// PasteIntoFolder moves files and folders into a folder
func (c *Client) PasteIntoFolder(ctx context.Context, req PasteRequest) (*StatusResult, error) {
	return invoke(ctx, c.pipeline, pasteFolderOp, req)
}

// DeleteFolder deletes a folder and everything in it
func (c *Client) DeleteFolder(ctx context.Context, folderID string) (*StatusResult, error) {
	return invoke(ctx, c.pipeline, deleteFolderOp, folderID)
}

// FolderUploadInfo returns an upload token and url for a folder
func (c *Client) FolderUploadInfo(ctx context.Context, folderID *string) (*UploadInfo, error) {
	return invoke(ctx, c.pipeline, uploadInfoOp, folderID)
}

// SearchFolders searches the cloud storage
func (c *Client) SearchFolders(ctx context.Context, query string) (*FolderSearch, error) {
	return invoke(ctx, c.pipeline, searchFolderOp, query)
}

// ListAllItems lists every file in the cloud storage
func (c *Client) ListAllItems(ctx context.Context) (*ItemList, error) {
	return invoke(ctx, c.pipeline, listAllItemsOp, none{})
}

// DeleteItem deletes a file
func (c *Client) DeleteItem(ctx context.Context, itemID string) (*StatusResult, error) {
	return invoke(ctx, c.pipeline, deleteItemOp, itemID)
}

// RenameItem renames a file
func (c *Client) RenameItem(ctx context.Context, req RenameRequest) (*StatusResult, error) {
	return invoke(ctx, c.pipeline, renameItemOp, req)
}

// ItemDetails returns the details of a file
func (c *Client) ItemDetails(ctx context.Context, itemID string) (*ItemDetails, error) {
	return invoke(ctx, c.pipeline, itemDetailsOp, itemID)
}

// GenerateZip creates a zip archive of files and folders
func (c *Client) GenerateZip(ctx context.Context, req ZipRequest) (*ZipLocation, error) {
	return invoke(ctx, c.pipeline, generateZipOp, req)
}

// CreateTransfer adds a new transfer from a URL or magnet link
func (c *Client) CreateTransfer(ctx context.Context, req CreateTransferRequest) (*CreatedTransfer, error) {
	return invoke(ctx, c.pipeline, createTransferOp, req)
}

// DirectDownload resolves src to direct download links
func (c *Client) DirectDownload(ctx context.Context, src string) (*DirectDownload, error) {
	return invoke(ctx, c.pipeline, directDownloadOp, src)
}

// ListTransfers returns the user's transfers
func (c *Client) ListTransfers(ctx context.Context) (*TransferList, error) {
	return invoke(ctx, c.pipeline, listTransfersOp, none{})
}

// ClearFinishedTransfers removes finished transfers from the list
func (c *Client) ClearFinishedTransfers(ctx context.Context) (*StatusResult, error) {
	return invoke(ctx, c.pipeline, clearFinishedOp, none{})
}

// DeleteTransfer removes a transfer
func (c *Client) DeleteTransfer(ctx context.Context, transferID string) (*StatusResult, error) {
	return invoke(ctx, c.pipeline, deleteTransferOp, transferID)
}

// CheckCache checks whether hashes or links are cached
func (c *Client) CheckCache(ctx context.Context, items []string) (*CacheCheck, error) {
	return invoke(ctx, c.pipeline, checkCacheOp, items)
}

// ListServices returns the supported hosters, unvalidated
func (c *Client) ListServices(ctx context.Context) (Body, error) {
	body, err := invoke(ctx, c.pipeline, listServicesOp, none{})
	if err != nil {
		return nil, err
	}
	return *body, nil
}
