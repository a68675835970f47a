package premiumize

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// operation describes one endpoint. Descriptors are package level values
// shared by every call.
type operation[Req, Resp any] struct {
	path      string
	method    string
	params    func(Req) url.Values
	validator Validator
}

type none struct{}

func invoke[Req, Resp any](ctx context.Context, p *pipeline, op operation[Req, Resp], req Req) (*Resp, error) {
	c := &call{
		method:    op.method,
		path:      op.path,
		validator: op.validator,
	}
	if op.params != nil {
		c.params = op.params(req)
	}

	value, err := p.execute(ctx, c)
	if err != nil {
		return nil, err
	}

	out, ok := value.(Resp)
	if !ok {
		return nil, &ValidationError{
			Method: c.method,
			Path:   c.path,
			Issues: []Issue{{Reason: fmt.Sprintf("validator produced %T", value)}},
		}
	}
	return &out, nil
}

// Request types. Pointer fields are optional and left out of the query when nil.

type ListFolderRequest struct {
	ID                 *string
	IncludeBreadcrumbs *bool
}

type CreateFolderRequest struct {
	Name     string
	ParentID *string
}

type RenameRequest struct {
	ID   string
	Name string
}

type PasteRequest struct {
	FolderID string
	Files    []string
	Folders  []string
}

type ZipRequest struct {
	Files   []string
	Folders []string
}

type CreateTransferRequest struct {
	Src      string
	FolderID *string
}

func idParams(id string) url.Values {
	return newParams().set("id", id).values()
}

func renameParams(req RenameRequest) url.Values {
	return newParams().set("id", req.ID).set("name", req.Name).values()
}

var (
	accountInfoOp = operation[none, AccountInfo]{
		path:      "/account/info",
		method:    http.MethodGet,
		validator: accountInfoSchema,
	}

	listFolderOp = operation[ListFolderRequest, FolderList]{
		path:   "/folder/list",
		method: http.MethodGet,
		params: func(req ListFolderRequest) url.Values {
			return newParams().
				optional("id", req.ID).
				optionalBool("includebreadcrumbs", req.IncludeBreadcrumbs).
				values()
		},
		validator: folderListSchema,
	}

	createFolderOp = operation[CreateFolderRequest, CreatedFolder]{
		path:   "/folder/create",
		method: http.MethodPost,
		params: func(req CreateFolderRequest) url.Values {
			return newParams().set("name", req.Name).optional("parent_id", req.ParentID).values()
		},
		validator: createdFolderSchema,
	}

	renameFolderOp = operation[RenameRequest, StatusResult]{
		path:      "/folder/rename",
		method:    http.MethodPost,
		params:    renameParams,
		validator: statusSchema,
	}

	pasteFolderOp = operation[PasteRequest, StatusResult]{
		path:   "/folder/paste",
		method: http.MethodPost,
		params: func(req PasteRequest) url.Values {
			return newParams().
				set("id", req.FolderID).
				list("files", req.Files).
				list("folders", req.Folders).
				values()
		},
		validator: statusSchema,
	}

	deleteFolderOp = operation[string, StatusResult]{
		path:      "/folder/delete",
		method:    http.MethodPost,
		params:    idParams,
		validator: statusSchema,
	}

	uploadInfoOp = operation[*string, UploadInfo]{
		path:   "/folder/uploadinfo",
		method: http.MethodGet,
		params: func(id *string) url.Values {
			return newParams().optional("id", id).values()
		},
		validator: uploadInfoSchema,
	}

	searchFolderOp = operation[string, FolderSearch]{
		path:   "/folder/search",
		method: http.MethodGet,
		params: func(q string) url.Values {
			return newParams().set("q", q).values()
		},
		validator: folderSearchSchema,
	}

	listAllItemsOp = operation[none, ItemList]{
		path:      "/item/listall",
		method:    http.MethodGet,
		validator: itemListSchema,
	}

	deleteItemOp = operation[string, StatusResult]{
		path:      "/item/delete",
		method:    http.MethodPost,
		params:    idParams,
		validator: statusSchema,
	}

	renameItemOp = operation[RenameRequest, StatusResult]{
		path:      "/item/rename",
		method:    http.MethodPost,
		params:    renameParams,
		validator: statusSchema,
	}

	itemDetailsOp = operation[string, ItemDetails]{
		path:      "/item/details",
		method:    http.MethodGet,
		params:    idParams,
		validator: itemDetailsSchema,
	}

	generateZipOp = operation[ZipRequest, ZipLocation]{
		path:   "/zip/generate",
		method: http.MethodPost,
		params: func(req ZipRequest) url.Values {
			return newParams().list("files", req.Files).list("folders", req.Folders).values()
		},
		validator: zipLocationSchema,
	}

	createTransferOp = operation[CreateTransferRequest, CreatedTransfer]{
		path:   "/transfer/create",
		method: http.MethodPost,
		params: func(req CreateTransferRequest) url.Values {
			return newParams().set("src", req.Src).optional("folder_id", req.FolderID).values()
		},
		validator: createdTransferSchema,
	}

	directDownloadOp = operation[string, DirectDownload]{
		path:   "/transfer/directdl",
		method: http.MethodPost,
		params: func(src string) url.Values {
			return newParams().set("src", src).values()
		},
		validator: directDownloadSchema,
	}

	listTransfersOp = operation[none, TransferList]{
		path:      "/transfer/list",
		method:    http.MethodGet,
		validator: transferListSchema,
	}

	clearFinishedOp = operation[none, StatusResult]{
		path:      "/transfer/clearfinished",
		method:    http.MethodPost,
		validator: statusSchema,
	}

	deleteTransferOp = operation[string, StatusResult]{
		path:      "/transfer/delete",
		method:    http.MethodPost,
		params:    idParams,
		validator: statusSchema,
	}

	checkCacheOp = operation[[]string, CacheCheck]{
		path:   "/cache/check",
		method: http.MethodGet,
		params: func(items []string) url.Values {
			return newParams().list("items", items).values()
		},
		validator: cacheCheckSchema,
	}

	// services/list has no stable shape, so the body is returned as is.
	listServicesOp = operation[none, Body]{
		path:   "/services/list",
		method: http.MethodGet,
	}
)
