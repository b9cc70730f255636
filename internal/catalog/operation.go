// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

// operationName names the gallery's search-templates-by-keyword operation.
const operationName = "getSearchTemplateGrid"

// searchDocument is the GraphQL document for operationName, sent verbatim
// with every request.
const searchDocument = `query getSearchTemplateGrid($query: String!, $filters: [String!], $offset: Int, $limit: Int, $locale: String, $generic: Boolean, $collectionId: String, $orderSeed: String) {
  searchTemplates(
    query: $query
    filters: $filters
    locale: $locale
    offset: $offset
    limit: $limit
    generic: $generic
    collectionId: $collectionId
    orderSeed: $orderSeed
  ) {
    id
    ...SearchTemplateGrid_searchTemplates
    __typename
  }
  componentContent {
    id
    ...SearchTemplateGrid_componentContent
    __typename
  }
}

fragment SearchTemplateGrid_searchTemplates on SearchTemplates {
  templates {
    templates {
      id
      ...TemplateThumbnailCard_template
      __typename
    }
    __typename
  }
  totalCount
  searchStatus
  __typename
}

fragment SearchTemplateGrid_componentContent on ComponentContent {
  ...TemplateThumbnailCard_componentContent
  ...noResultsHeading_ComponentContent
  __typename
}

fragment TemplateThumbnailCard_template on Template {
  title
  longFormTitle
  premium
  templateContentType
  ...TemplateThumbnail_template
  ...TemplateThumbnailActions_template
  __typename
}

fragment TemplateThumbnail_template on Template {
  thumbnails {
    alt
    height
    size
    uri
    width
    contentType
    __typename
  }
  __typename
}

fragment TemplateThumbnailActions_template on Template {
  ...TemplateThumbnailContentTypeLabel_template
  __typename
}

fragment TemplateThumbnailContentTypeLabel_template on Template {
  templateContentType
  supportingApplication
  __typename
}

fragment TemplateThumbnailCard_componentContent on ComponentContent {
  ...TemplateThumbnailActions_componentContent
  __typename
}

fragment TemplateThumbnailActions_componentContent on ComponentContent {
  ...TemplateThumbnailContentTypeLabel_componentContent
  __typename
}

fragment TemplateThumbnailContentTypeLabel_componentContent on ComponentContent {
  templateThumbnailOverlay {
    ctaLabelPrefix
    __typename
  }
  __typename
}

fragment noResultsHeading_ComponentContent on ComponentContent {
  noSearchResults {
    heading
    subheading
    __typename
  }
  __typename
}`
