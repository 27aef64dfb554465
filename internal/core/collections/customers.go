package collections

import "github.com/JonMunkholm/sheetsync/internal/core"

func registerCustomers() {
	core.Register(core.CollectionDefinition{
		Info: core.CollectionInfo{
			Key:   core.CustomersKey,
			Group: "Customers",
			Label: "Customers",
		},
		Columns: []string{
			core.ColCustomerID,
			core.ColCustomerName,
			core.ColContactName,
			core.ColContactNumber,
			core.ColDate,
			core.ColAddress,
			core.ColItemIDs,
		},
		ListColumns: []string{
			core.ColCustomerName,
			core.ColContactName,
			core.ColContactNumber,
			core.ColAddress,
			core.ColDate,
		},
		Required: []string{
			core.ColCustomerName,
			core.ColContactName,
			core.ColContactNumber,
			core.ColAddress,
		},
		KeyField:  core.ColCustomerID,
		IDPrefix:  "CUST",
		LinkField: core.ColItemIDs,
		ChildKey:  core.ItemsKey,
		Messages: core.Messages{
			CreateOK:   "Customer & Items saved successfully!",
			CreateFail: "Failed to submit",
			UpdateOK:   "Customer updated!",
			UpdateFail: "Failed to update customer.",
			DeleteOK:   "Customer and related items deleted.",
			DeleteFail: "Failed to delete customer or items.",
		},
	})
}

func registerItems() {
	core.Register(core.CollectionDefinition{
		Info: core.CollectionInfo{
			Key:   core.ItemsKey,
			Group: "Customers",
			Label: "Items",
		},
		Columns: []string{
			core.ColItemID,
			core.ColItemCode,
			core.ColItemDescription,
			core.ColQty,
			core.ColRate,
			core.ColAmount,
			core.ColCustomerID,
		},
		KeyField:    core.ColItemID,
		IDPrefix:    "ITEM",
		ParentField: core.ColCustomerID,
		Items: core.ItemColumns{
			Code:        core.ColItemCode,
			Description: core.ColItemDescription,
			Qty:         core.ColQty,
			Rate:        core.ColRate,
			Amount:      core.ColAmount,
		},
	})
}
