package repository

// ProductListFilter 查询商品列表的过滤条件，字段对应 json-server 的 _page/_limit/_sort/_order/q
type ProductListFilter struct {
	Page     int
	PageSize int
	Search   string
	Sort     string
	Order    string
}
