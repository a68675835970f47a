package premiumize

import "context"

// ClientAPI defines the methods required to interact with Premiumize.
// It mirrors the concrete client so it can be mocked in tests.
type ClientAPI interface {
	AccountInfo(ctx context.Context) (*AccountInfo, error)
	ListFolder(ctx context.Context, req ListFolderRequest) (*FolderList, error)
	CreateFolder(ctx context.Context, req CreateFolderRequest) (*CreatedFolder, error)
	RenameFolder(ctx context.Context, req RenameRequest) (*StatusResult, error)
	PasteIntoFolder(ctx context.Context, req PasteRequest) (*StatusResult, error)
	DeleteFolder(ctx context.Context, folderID string) (*StatusResult, error)
	FolderUploadInfo(ctx context.Context, folderID *string) (*UploadInfo, error)
	SearchFolders(ctx context.Context, query string) (*FolderSearch, error)
	ListAllItems(ctx context.Context) (*ItemList, error)
	DeleteItem(ctx context.Context, itemID string) (*StatusResult, error)
	RenameItem(ctx context.Context, req RenameRequest) (*StatusResult, error)
	ItemDetails(ctx context.Context, itemID string) (*ItemDetails, error)
	GenerateZip(ctx context.Context, req ZipRequest) (*ZipLocation, error)
	CreateTransfer(ctx context.Context, req CreateTransferRequest) (*CreatedTransfer, error)
	DirectDownload(ctx context.Context, src string) (*DirectDownload, error)
	ListTransfers(ctx context.Context) (*TransferList, error)
	ClearFinishedTransfers(ctx context.Context) (*StatusResult, error)
	DeleteTransfer(ctx context.Context, transferID string) (*StatusResult, error)
	CheckCache(ctx context.Context, items []string) (*CacheCheck, error)
	ListServices(ctx context.Context) (Body, error)
}
