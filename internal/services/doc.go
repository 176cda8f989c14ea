// Package services 提供应用的领域服务层，持有内存集合并封装业务规则
// （分页、搜索、邮箱唯一性、作者归属检查）。
// 该层对 handlers 提供较为稳定的接口，错误以带类别标签的 *Error 返回。
package services
