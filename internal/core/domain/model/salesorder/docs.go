// Package salesorder provides the SalesOrder aggregate: the customer-visible
// order created from an accepted sales quote that holds a purchase order.
//
// Production follows a strict pipeline, one stage at a time:
//
//	pending -> material_procurement -> manufacturing -> finishing ->
//	quality_check -> packing -> shipped -> delivered
//
// Payment is an independent axis and may be marked at any stage, including
// while archived. Archive is only possible once delivered; reopen clears the
// archive flag and leaves the stage untouched.
package salesorder
