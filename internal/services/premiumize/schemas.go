package premiumize

// Response contracts. Numeric fields accept numeric strings and ids accept
// numbers because the service is not consistent about either; Schema
// normalizes both.

var statusSchema = MustSchema[StatusResult]("status", `{
	"type": "object",
	"required": ["status"],
	"properties": {
		"status": {"type": "string"},
		"message": {"type": ["string", "null"]}
	}
}`)

var accountInfoSchema = MustSchema[AccountInfo]("account_info", `{
	"type": "object",
	"required": ["customer_id", "premium_until", "limit_used", "space_used"],
	"properties": {
		"status": {"type": "string"},
		"customer_id": {"type": ["integer", "string"]},
		"premium_until": {"type": ["integer", "string", "boolean"]},
		"limit_used": {"type": ["number", "string"]},
		"space_used": {"type": ["number", "string"]}
	}
}`)

const fileProperties = `
	"id": {"type": ["string", "integer"]},
	"name": {"type": "string"},
	"size": {"type": ["number", "string"]},
	"created_at": {"type": ["integer", "string", "null"]},
	"mime_type": {"type": ["string", "null"]},
	"transcode_status": {"type": ["string", "null"]},
	"link": {"type": ["string", "null"]},
	"stream_link": {"type": ["string", "null"]},
	"virus_scan": {"type": ["string", "null"]}`

const entrySchema = `{
	"type": "object",
	"required": ["id", "name", "type"],
	"properties": {
		"type": {"enum": ["file", "folder"]},
		` + fileProperties + `
	}
}`

var folderListSchema = MustSchema[FolderList]("folder_list", `{
	"type": "object",
	"required": ["status", "content"],
	"properties": {
		"status": {"type": "string"},
		"content": {"type": "array", "items": `+entrySchema+`},
		"breadcrumbs": {
			"type": ["array", "null"],
			"items": {
				"type": "object",
				"required": ["id", "name"],
				"properties": {
					"id": {"type": ["string", "integer"]},
					"name": {"type": "string"},
					"parent_id": {"type": ["string", "integer", "null"]}
				}
			}
		},
		"name": {"type": ["string", "null"]},
		"parent_id": {"type": ["string", "integer", "null"]},
		"folder_id": {"type": ["string", "integer", "null"]}
	}
}`)

var folderSearchSchema = MustSchema[FolderSearch]("folder_search", `{
	"type": "object",
	"required": ["status", "content"],
	"properties": {
		"status": {"type": "string"},
		"content": {"type": "array", "items": `+entrySchema+`},
		"name": {"type": ["string", "null"]}
	}
}`)

var createdFolderSchema = MustSchema[CreatedFolder]("created_folder", `{
	"type": "object",
	"required": ["status", "id"],
	"properties": {
		"status": {"type": "string"},
		"id": {"type": ["string", "integer"]}
	}
}`)

var uploadInfoSchema = MustSchema[UploadInfo]("upload_info", `{
	"type": "object",
	"required": ["status", "token", "url"],
	"properties": {
		"status": {"type": "string"},
		"token": {"type": "string"},
		"url": {"type": "string"}
	}
}`)

var itemListSchema = MustSchema[ItemList]("item_list", `{
	"type": "object",
	"required": ["status", "files"],
	"properties": {
		"status": {"type": "string"},
		"files": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id", "name"],
				"properties": {
					`+fileProperties+`,
					"path": {"type": ["string", "null"]}
				}
			}
		}
	}
}`)

var itemDetailsSchema = MustSchema[ItemDetails]("item_details", `{
	"type": "object",
	"required": ["id", "name"],
	"properties": {
		"id": {"type": ["string", "integer"]},
		"name": {"type": "string"},
		"type": {"type": ["string", "null"]},
		"size": {"type": ["number", "string", "null"]},
		"created_at": {"type": ["integer", "string", "null"]},
		"folder_id": {"type": ["string", "integer", "null"]},
		"duration": {"type": ["number", "string", "null"]}
	}
}`).WithDefaults(Body{"type": "file"})

var zipLocationSchema = MustSchema[ZipLocation]("zip_location", `{
	"type": "object",
	"required": ["status", "location"],
	"properties": {
		"status": {"type": "string"},
		"location": {"type": "string"}
	}
}`)

var createdTransferSchema = MustSchema[CreatedTransfer]("created_transfer", `{
	"type": "object",
	"required": ["status", "id"],
	"properties": {
		"status": {"type": "string"},
		"type": {"type": ["string", "null"]},
		"id": {"type": ["string", "integer"]},
		"name": {"type": ["string", "null"]}
	}
}`)

var directDownloadSchema = MustSchema[DirectDownload]("direct_download", `{
	"type": "object",
	"required": ["status", "content"],
	"properties": {
		"status": {"type": "string"},
		"location": {"type": ["string", "null"]},
		"filename": {"type": ["string", "null"]},
		"filesize": {"type": ["number", "string", "null"]},
		"content": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["path", "size", "link"],
				"properties": {
					"path": {"type": "string"},
					"size": {"type": ["number", "string"]},
					"link": {"type": "string"},
					"stream_link": {"type": ["string", "null"]},
					"transcode_status": {"type": ["string", "null"]}
				}
			}
		}
	}
}`)

var transferListSchema = MustSchema[TransferList]("transfer_list", `{
	"type": "object",
	"required": ["status", "transfers"],
	"properties": {
		"status": {"type": "string"},
		"transfers": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id", "name", "status"],
				"properties": {
					"id": {"type": ["string", "integer"]},
					"name": {"type": "string"},
					"message": {"type": ["string", "null"]},
					"status": {"type": "string"},
					"progress": {"type": ["number", "string", "null"]},
					"src": {"type": ["string", "null"]},
					"folder_id": {"type": ["string", "integer", "null"]},
					"file_id": {"type": ["string", "integer", "null"]}
				}
			}
		}
	}
}`)

var cacheCheckSchema = MustSchema[CacheCheck]("cache_check", `{
	"type": "object",
	"required": ["status", "response"],
	"properties": {
		"status": {"type": "string"},
		"response": {"type": "array", "items": {"type": "boolean"}},
		"transcoded": {"type": ["array", "null"], "items": {"type": ["boolean", "null"]}},
		"filename": {"type": ["array", "null"], "items": {"type": ["string", "null"]}},
		"filesize": {"type": ["array", "null"], "items": {"type": ["number", "string", "null"]}}
	}
}`)
