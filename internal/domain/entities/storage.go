package entities

// StorageFolder is a prefix inside the documents bucket
type StorageFolder string

const (
	FolderContracts         StorageFolder = "contracts"
	FolderReviewedContracts StorageFolder = "reviewed-contracts"
	FolderKYCDocuments      StorageFolder = "kyc-documents"
)
